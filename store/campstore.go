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

	"github.com/scoutforge/camp-ops-go/camp"
)

// CampStore is the durable list of all Camp records, one JSON document
// holding the full list plus a revision counter for optimistic saves.
type CampStore struct {
	path string
}

type campDocument struct {
	Revision int64        `json:"revision"`
	Camps    []*camp.Camp `json:"camps"`
}

// Load reads every camp from the backing document. Each call returns
// freshly built Camp values; nothing is shared with earlier loads. An
// absent or empty document is an empty store at revision 0. A document
// that fails to parse is reported and likewise treated as empty, so the
// application keeps running on a corrupt store rather than dying.
func (cs *CampStore) Load() (camps []*camp.Camp, revision int64, err error) {
	data, err := readFile(cs.path)
	if err != nil {
		return nil, 0, fmt.Errorf("[readFile]: %w", err)
	}
	if len(data) == 0 {
		return nil, 0, nil
	}
	var doc campDocument
	if jsonErr := json.Unmarshal(data, &doc); jsonErr != nil {
		// Older documents were a bare array of camp records.
		if arrErr := json.Unmarshal(data, &doc.Camps); arrErr != nil {
			slog.Error("Camp store is corrupted; treating it as empty",
				"path", cs.path, "err", jsonErr)
			return nil, 0, nil
		}
		doc.Revision = 0
	}
	return doc.Camps, doc.Revision, nil
}

// Save replaces the whole document with the given camp list.
// expectedRevision must match the revision returned by the Load that
// produced this camp list; if the document has been rewritten since,
// Save fails with ErrStaleRevision and writes nothing. On success the
// stored revision is bumped by one.
func (cs *CampStore) Save(camps []*camp.Camp, expectedRevision int64) error {
	_, current, err := cs.Load()
	if err != nil {
		return fmt.Errorf("[Load]: %w", err)
	}
	if current != expectedRevision {
		return fmt.Errorf("%w: have revision %d, found %d", ErrStaleRevision, expectedRevision, current)
	}
	if camps == nil {
		camps = []*camp.Camp{}
	}
	doc := campDocument{
		Revision: expectedRevision + 1,
		Camps:    camps,
	}
	if err = writeJSON(cs.path, doc); err != nil {
		return fmt.Errorf("[writeJSON]: %w", err)
	}
	return nil
}

// Create validates uniqueness of the camp name against the current
// document and appends the new camp. Name is the primary key, so a
// duplicate is rejected up front.
func (cs *CampStore) Create(newCamp *camp.Camp) error {
	camps, revision, err := cs.Load()
	if err != nil {
		return fmt.Errorf("[Load]: %w", err)
	}
	if _, err := camp.ByName(camps, newCamp.Name); err == nil {
		return fmt.Errorf("%w: a camp named %q already exists", camp.ErrValidation, newCamp.Name)
	}
	camps = append(camps, newCamp)
	if err = cs.Save(camps, revision); err != nil {
		return fmt.Errorf("[Save]: %w", err)
	}
	return nil
}

// Delete removes the named camp. Deletion is hard; there is no archive.
func (cs *CampStore) Delete(name string) error {
	camps, revision, err := cs.Load()
	if err != nil {
		return fmt.Errorf("[Load]: %w", err)
	}
	kept := make([]*camp.Camp, 0, len(camps))
	for _, c := range camps {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(camps) {
		return fmt.Errorf("%w: %q", camp.ErrNotFound, name)
	}
	if err = cs.Save(kept, revision); err != nil {
		return fmt.Errorf("[Save]: %w", err)
	}
	return nil
}

// Update loads the store, lets mutate rework the camp list, and saves
// the result under the loaded revision. It is the standard
// load -> mutate -> save transaction used by every write path.
func (cs *CampStore) Update(mutate func(camps []*camp.Camp) ([]*camp.Camp, error)) error {
	camps, revision, err := cs.Load()
	if err != nil {
		return fmt.Errorf("[Load]: %w", err)
	}
	camps, err = mutate(camps)
	if err != nil {
		return err
	}
	if err = cs.Save(camps, revision); err != nil {
		return fmt.Errorf("[Save]: %w", err)
	}
	return nil
}
