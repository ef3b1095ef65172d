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

// FoodRequirementStore keeps the per-camp food requirement (units per
// camper per day) in its own document, keyed by camp name. It lives
// apart from the camp records because scout leaders set it while
// logistics coordinators own the camp document.
type FoodRequirementStore struct {
	path string
}

// All returns the full camp name -> units/camper/day mapping. Missing,
// empty, and corrupt documents all read as an empty mapping; corruption
// is reported in the log.
func (fs *FoodRequirementStore) All() (map[string]int64, error) {
	data, err := readFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("[readFile]: %w", err)
	}
	reqs := map[string]int64{}
	if len(data) == 0 {
		return reqs, nil
	}
	if err := json.Unmarshal(data, &reqs); err != nil {
		slog.Error("Food requirement store is corrupted; treating it as empty",
			"path", fs.path, "err", err)
		return map[string]int64{}, nil
	}
	return reqs, nil
}

// Get looks up one camp's requirement. ok is false when no requirement
// has been set for the camp.
func (fs *FoodRequirementStore) Get(campName string) (perCamper int64, ok bool, err error) {
	reqs, err := fs.All()
	if err != nil {
		return 0, false, fmt.Errorf("[All]: %w", err)
	}
	perCamper, ok = reqs[campName]
	return perCamper, ok, nil
}

// Rename moves a camp's requirement to a new key, keeping its value.
// Renaming a camp that has no requirement is a no-op.
func (fs *FoodRequirementStore) Rename(oldName, newName string) error {
	reqs, err := fs.All()
	if err != nil {
		return fmt.Errorf("[All]: %w", err)
	}
	perCamper, ok := reqs[oldName]
	if !ok {
		return nil
	}
	delete(reqs, oldName)
	reqs[newName] = perCamper
	if err = writeJSON(fs.path, reqs); err != nil {
		return fmt.Errorf("[writeJSON]: %w", err)
	}
	return nil
}

// Set writes one camp's requirement, rejecting negative values.
func (fs *FoodRequirementStore) Set(campName string, perCamper int64) error {
	if perCamper < 0 {
		return fmt.Errorf("food per camper must be non-negative, got %d", perCamper)
	}
	reqs, err := fs.All()
	if err != nil {
		return fmt.Errorf("[All]: %w", err)
	}
	reqs[campName] = perCamper
	if err = writeJSON(fs.path, reqs); err != nil {
		return fmt.Errorf("[writeJSON]: %w", err)
	}
	return nil
}
