//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package store persists all camp-ops state as flat files in a single
// data directory. Every operation is load -> mutate -> save over the
// whole document; nothing is cached between calls.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const (
	campsFilename         = "camp_data.json"
	foodReqFilename       = "food_requirements.json"
	notificationsFilename = "notifications.json"
	messagesFilename      = "messages.json"
	loginsFilename        = "logins.txt"
	disabledFilename      = "disabled_logins.txt"
)

// ErrStaleRevision means the camp document changed on disk after the
// caller loaded it. The save is rejected so that the concurrent edit is
// not silently discarded; the caller should reload and retry.
var ErrStaleRevision = errors.New("camp store was modified since it was loaded")

// Store bundles the per-file stores sharing one data directory.
type Store struct {
	Camps            *CampStore
	FoodRequirements *FoodRequirementStore
	Notifications    *NotificationStore
	Messages         *MessageStore

	dir string
}

// Open prepares a Store rooted at dataDir, creating the directory if
// needed. The backing files themselves are created lazily on first save.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("[os.MkdirAll]: %w", err)
	}
	return &Store{
		Camps:            &CampStore{path: filepath.Join(dataDir, campsFilename)},
		FoodRequirements: &FoodRequirementStore{path: filepath.Join(dataDir, foodReqFilename)},
		Notifications:    &NotificationStore{path: filepath.Join(dataDir, notificationsFilename)},
		Messages:         &MessageStore{path: filepath.Join(dataDir, messagesFilename)},
		dir:              dataDir,
	}, nil
}

// Dir is the data directory this store was opened on.
func (s *Store) Dir() string {
	return s.dir
}

// LoginsPath is the user credential file consumed by the directory package.
func (s *Store) LoginsPath() string {
	return filepath.Join(s.dir, loginsFilename)
}

// DisabledLoginsPath is the disabled-usernames file consumed by the
// directory package.
func (s *Store) DisabledLoginsPath() string {
	return filepath.Join(s.dir, disabledFilename)
}

// readFile slurps a backing file. A missing or empty file is not an
// error; it reads as empty content.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[os.ReadFile]: %w", err)
	}
	return data, nil
}

// writeJSON marshals v and replaces the file atomically, so a crash
// mid-write leaves the previous document intact.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("[json.MarshalIndent]: %w", err)
	}
	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("[atomic.WriteFile]: %w", err)
	}
	return nil
}
