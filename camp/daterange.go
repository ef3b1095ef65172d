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
	"time"
)

// DateLayout is the wire format for all camp dates.
const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses the two date strings and requires start <= end.
func ParseDateRange(startDate, endDate string) (DateRange, error) {
	var empty DateRange
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return empty, fmt.Errorf("%w: bad start date %q", ErrValidation, startDate)
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return empty, fmt.Errorf("%w: bad end date %q", ErrValidation, endDate)
	}
	if end.Before(start) {
		return empty, fmt.Errorf("%w: end date %q is before start date %q", ErrValidation, endDate, startDate)
	}
	return DateRange{Start: start, End: end}, nil
}

// Days is the inclusive length of the range, so a single-date range is 1.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Overlaps reports whether two inclusive ranges share any date. Ranges
// that merely touch at a boundary date count as overlapping.
func (r DateRange) Overlaps(other DateRange) bool {
	return !(r.End.Before(other.Start) || other.End.Before(r.Start))
}

// DateRange parses the camp's stored dates.
func (c *Camp) DateRange() (DateRange, error) {
	return ParseDateRange(c.StartDate, c.EndDate)
}

// DurationDays is the camp's inclusive duration in days, clamped to 1
// when the stored dates fail to parse. A malformed date is recovered
// here rather than propagated, so accounting never fails outright.
func (c *Camp) DurationDays() int {
	dr, err := c.DateRange()
	if err != nil {
		return 1
	}
	return max(dr.Days(), 1)
}

// AnyConflict reports whether any unordered pair of camps overlaps in
// date range. The pairwise scan is quadratic, which is fine for the
// camp counts this system sees. Camps whose dates do not parse cannot
// overlap anything and are skipped.
func AnyConflict(camps []*Camp) bool {
	ranges := make([]*DateRange, len(camps))
	for i, c := range camps {
		if dr, err := c.DateRange(); err == nil {
			ranges[i] = &dr
		}
	}
	for i := range ranges {
		if ranges[i] == nil {
			continue
		}
		for j := i + 1; j < len(ranges); j++ {
			if ranges[j] == nil {
				continue
			}
			if ranges[i].Overlaps(*ranges[j]) {
				return true
			}
		}
	}
	return false
}
