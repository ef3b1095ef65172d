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

// Type classifies a camp by its duration.
type Type int8

const (
	TypeDay       Type = 1
	TypeOvernight Type = 2
	TypeMultiDay  Type = 3
)

// MinMultiDayNights is the minimum number of nights for a multi-day camp.
const MinMultiDayNights = 2

func (t Type) Validate() error {
	switch t {
	case TypeDay, TypeOvernight, TypeMultiDay:
		return nil
	default:
		return fmt.Errorf("%w: unknown camp type %d", ErrValidation, t)
	}
}

func (t Type) String() string {
	switch t {
	case TypeDay:
		return "Day"
	case TypeOvernight:
		return "Overnight"
	case TypeMultiDay:
		return "MultiDay"
	default:
		return fmt.Sprintf("Type(%d)", int8(t))
	}
}

// ActivityEntry is one logged occurrence in a camp's daily timeline.
// Entries are append-only; there is no edit or delete of past entries.
type ActivityEntry struct {
	Activity string `json:"activity"`
	Time     string `json:"time,omitzero"`
	Notes    string `json:"notes"`
	FoodUsed int64  `json:"food_used,omitzero"`
}

// Camp is one scheduled camp session. Name is the de facto primary key:
// the store enforces uniqueness at creation time.
//
// Dates are ISO 8601 date strings ("2006-01-02") and ranges are inclusive
// on both ends. FoodStock and PayRate are per-day quantities.
type Camp struct {
	Name           string                     `json:"name"`
	Location       string                     `json:"location"`
	Type           Type                       `json:"camp_type"`
	StartDate      string                     `json:"start_date"`
	EndDate        string                     `json:"end_date"`
	FoodStock      int64                      `json:"food_stock"`
	ScoutLeaders   []string                   `json:"scout_leaders"`
	Campers        []string                   `json:"campers"`
	Activities     map[string][]ActivityEntry `json:"activities"`
	DailyFoodUsage map[string]int64           `json:"daily_food_usage"`
	DailyRecords   map[string][]string        `json:"daily_records"`
	PayRate        int64                      `json:"pay_rate"`
}

// New validates and builds a Camp. The collections always start empty;
// the system fills them in later through the mutators below.
func New(name, location string, typ Type, startDate, endDate string, foodStock int64) (*Camp, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: camp name must not be blank", ErrValidation)
	}
	if location == "" {
		return nil, fmt.Errorf("%w: camp location must not be blank", ErrValidation)
	}
	if err := typ.Validate(); err != nil {
		return nil, err
	}
	if foodStock < 0 {
		return nil, fmt.Errorf("%w: food stock must be non-negative", ErrValidation)
	}
	dr, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	nights := dr.Days() - 1
	switch typ {
	case TypeDay:
		if nights != 0 {
			return nil, fmt.Errorf("%w: a day camp must start and end on the same date", ErrValidation)
		}
	case TypeOvernight:
		if nights != 1 {
			return nil, fmt.Errorf("%w: an overnight camp must be exactly one night", ErrValidation)
		}
	case TypeMultiDay:
		if nights < MinMultiDayNights {
			return nil, fmt.Errorf("%w: a multi-day camp must be at least %d nights", ErrValidation, MinMultiDayNights)
		}
	}
	return &Camp{
		Name:           name,
		Location:       location,
		Type:           typ,
		StartDate:      startDate,
		EndDate:        endDate,
		FoodStock:      foodStock,
		ScoutLeaders:   []string{},
		Campers:        []string{},
		Activities:     map[string][]ActivityEntry{},
		DailyFoodUsage: map[string]int64{},
		DailyRecords:   map[string][]string{},
	}, nil
}

// AssignLeader adds a leader to the camp's supervision set. Re-assigning
// an existing leader is a non-fatal no-op; the return value reports
// whether the set actually changed.
func (c *Camp) AssignLeader(username string) (added bool) {
	if slices.Contains(c.ScoutLeaders, username) {
		return false
	}
	c.ScoutLeaders = append(c.ScoutLeaders, username)
	return true
}

// RemoveLeader deletes a leader from the supervision set, if present.
func (c *Camp) RemoveLeader(username string) (removed bool) {
	before := len(c.ScoutLeaders)
	c.ScoutLeaders = slices.DeleteFunc(c.ScoutLeaders, func(s string) bool {
		return s == username
	})
	return len(c.ScoutLeaders) != before
}

// AssignCampers enrolls each named camper, skipping names already on the
// roster. It returns the names that were actually added.
func (c *Camp) AssignCampers(names []string) (added []string) {
	for _, name := range names {
		if slices.Contains(c.Campers, name) {
			continue
		}
		c.Campers = append(c.Campers, name)
		added = append(added, name)
	}
	return added
}

// NoteDailyRecord appends a free-text note to the camp's records for a date.
func (c *Camp) NoteDailyRecord(date, text string) {
	if c.DailyRecords == nil {
		c.DailyRecords = map[string][]string{}
	}
	c.DailyRecords[date] = append(c.DailyRecords[date], text)
}

// LogActivity appends a structured activity entry for a date. An empty
// activity name is recorded as "unspecified". Food consumption, when
// given, is accumulated into the camp's daily usage. Every logged
// activity also leaves a plain-text daily record as a byproduct.
func (c *Camp) LogActivity(date string, entry ActivityEntry) error {
	if entry.FoodUsed < 0 {
		return fmt.Errorf("%w: food used must be non-negative", ErrValidation)
	}
	if entry.Activity == "" {
		entry.Activity = "unspecified"
	}
	if c.Activities == nil {
		c.Activities = map[string][]ActivityEntry{}
	}
	c.Activities[date] = append(c.Activities[date], entry)
	if entry.FoodUsed > 0 {
		if c.DailyFoodUsage == nil {
			c.DailyFoodUsage = map[string]int64{}
		}
		c.DailyFoodUsage[date] += entry.FoodUsed
	}
	c.NoteDailyRecord(date, entry.Notes)
	return nil
}

// AllocateExtraFood tops up the camp's daily food stock.
func (c *Camp) AllocateExtraFood(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: top-up amount must be non-negative", ErrValidation)
	}
	c.FoodStock += amount
	return nil
}

// SetFoodStock replaces the camp's daily food stock outright, as opposed
// to the incremental AllocateExtraFood.
func (c *Camp) SetFoodStock(units int64) error {
	if units < 0 {
		return fmt.Errorf("%w: food stock must be non-negative", ErrValidation)
	}
	c.FoodStock = units
	return nil
}

// Edit rebuilds the camp's identity and schedule fields under the same
// validation as New, carrying the accumulated state (supervision, roster,
// activities, food usage, daily records) into the result. The receiver
// is left untouched, so a validation failure changes nothing.
func (c *Camp) Edit(name, location string, typ Type, startDate, endDate string, foodStock, payRate int64) (*Camp, error) {
	if payRate < 0 {
		return nil, fmt.Errorf("%w: pay rate must be non-negative", ErrValidation)
	}
	edited, err := New(name, location, typ, startDate, endDate, foodStock)
	if err != nil {
		return nil, err
	}
	edited.ScoutLeaders = c.ScoutLeaders
	edited.Campers = c.Campers
	edited.Activities = c.Activities
	edited.DailyFoodUsage = c.DailyFoodUsage
	edited.DailyRecords = c.DailyRecords
	edited.PayRate = payRate
	return edited, nil
}

// ByName finds a camp in a list by its name.
func ByName(camps []*Camp, name string) (*Camp, error) {
	for _, c := range camps {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}
