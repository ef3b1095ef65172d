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

package camp

import (
	"fmt"
	"slices"
)

// SelectByIndices resolves one-based camp indices into camp names,
// preserving order and dropping duplicates. Out-of-range indices are
// rejected.
func SelectByIndices(indices []int, all []*Camp) ([]string, error) {
	var names []string
	for _, idx := range indices {
		if idx < 1 || idx > len(all) {
			return nil, fmt.Errorf("%w: index %d", ErrNotFound, idx)
		}
		name := all[idx-1].Name
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names, nil
}

// AssignLeaderToCamps replaces a leader's full supervision set with the
// selected camps. The selection is validated and conflict-checked as a
// whole before anything is touched: if any selected pair overlaps in
// date range, the assignment fails and no camp is mutated. On success
// the leader is added to every selected camp and removed from every
// camp not selected, and the names of the supervised camps are returned.
func AssignLeaderToCamps(leader string, selectedNames []string, all []*Camp) ([]string, error) {
	if leader == "" {
		return nil, fmt.Errorf("%w: leader username must not be blank", ErrValidation)
	}
	selected := make([]*Camp, 0, len(selectedNames))
	for _, name := range selectedNames {
		c, err := ByName(all, name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, c)
	}
	if AnyConflict(selected) {
		return nil, fmt.Errorf("%w: choose camps whose dates do not overlap", ErrConflict)
	}

	supervising := make([]string, 0, len(selected))
	for _, c := range all {
		if slices.Contains(selectedNames, c.Name) {
			c.AssignLeader(leader)
			supervising = append(supervising, c.Name)
		} else {
			c.RemoveLeader(leader)
		}
	}
	return supervising, nil
}

// ImportResult summarizes a bulk camper import.
type ImportResult struct {
	Added   []string    `json:"added"`
	Skipped []Collision `json:"skipped"`
}

// Collision reports a camper who could not be imported because they are
// already enrolled in a different camp.
type Collision struct {
	Camper string `json:"camper"`
	Camp   string `json:"camp"`
}

// BulkImportCampers enrolls the rostered campers into the named camp.
// A camper already enrolled in any other camp is skipped and reported;
// the other camp is left untouched. A camper already on the target
// camp's own roster is a silent no-op.
func BulkImportCampers(campName string, rows []RosterRow, all []*Camp) (ImportResult, error) {
	var result ImportResult
	target, err := ByName(all, campName)
	if err != nil {
		return result, err
	}
	for _, row := range rows {
		holder := campHolding(row.Name, campName, all)
		if holder != "" {
			result.Skipped = append(result.Skipped, Collision{Camper: row.Name, Camp: holder})
			continue
		}
		result.Added = append(result.Added, target.AssignCampers([]string{row.Name})...)
	}
	return result, nil
}

// campHolding returns the name of the first camp other than exclude that
// already has the camper enrolled, or "" if none does.
func campHolding(camper, exclude string, all []*Camp) string {
	for _, c := range all {
		if c.Name == exclude {
			continue
		}
		if slices.Contains(c.Campers, camper) {
			return c.Name
		}
	}
	return ""
}
