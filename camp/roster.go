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
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// RosterRow is one camper from an import CSV. Age stays a string because
// the source files are hand-maintained and nothing computes on it.
type RosterRow struct {
	Name       string
	Age        string
	Activities []string
}

// ParseRoster reads camper rows from a CSV with columns Name, Age, and
// Activities (semicolon-separated). Rows that cannot be parsed or lack a
// name are reported in the returned error slice rather than failing the
// whole import.
func ParseRoster(r io.Reader) ([]RosterRow, []error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("[reader.Read]: %w", err)}
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	nameIdx, ok := col["Name"]
	if !ok {
		return nil, []error{fmt.Errorf("%w: roster CSV has no Name column", ErrValidation)}
	}
	ageIdx, hasAge := col["Age"]
	actIdx, hasActivities := col["Activities"]

	var rows []RosterRow
	var rowErrs []error
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if nameIdx >= len(record) || strings.TrimSpace(record[nameIdx]) == "" {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w: blank camper name", line, ErrValidation))
			continue
		}
		row := RosterRow{Name: strings.TrimSpace(record[nameIdx])}
		if hasAge && ageIdx < len(record) {
			row.Age = strings.TrimSpace(record[ageIdx])
		}
		if hasActivities && actIdx < len(record) {
			for _, a := range strings.Split(record[actIdx], ";") {
				if a = strings.TrimSpace(a); a != "" {
					row.Activities = append(row.Activities, a)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, rowErrs
}
