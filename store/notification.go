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

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// NotificationStore is the append-only list of notification texts that
// the reporting UI renders. It satisfies camp.Notifier.
type NotificationStore struct {
	path string
}

// List returns all notifications in append order.
func (ns *NotificationStore) List() ([]string, error) {
	data, err := readFile(ns.path)
	if err != nil {
		return nil, fmt.Errorf("[readFile]: %w", err)
	}
	if len(data) == 0 {
		return []string{}, nil
	}
	var notifications []string
	if err := json.Unmarshal(data, &notifications); err != nil {
		slog.Error("Notification store is corrupted; treating it as empty",
			"path", ns.path, "err", err)
		return []string{}, nil
	}
	return notifications, nil
}

// AddNotification appends one notification text.
func (ns *NotificationStore) AddNotification(text string) error {
	notifications, err := ns.List()
	if err != nil {
		return fmt.Errorf("[List]: %w", err)
	}
	notifications = append(notifications, text)
	if err = writeJSON(ns.path, notifications); err != nil {
		return fmt.Errorf("[writeJSON]: %w", err)
	}
	return nil
}
