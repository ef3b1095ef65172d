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

import "fmt"

// Forecast compares a camp's food requirement against its stock over the
// camp's full duration.
type Forecast struct {
	CamperCount  int   `json:"camper_count"`
	DurationDays int   `json:"duration_days"`
	Required     int64 `json:"required"`
	Available    int64 `json:"available"`
}

// Shortage reports whether the camp cannot cover its forecast requirement.
func (f Forecast) Shortage() bool {
	return f.Available < f.Required
}

// Notifier is the sink a shortage check reports into. The notification
// list is append-only and consumed by the reporting UI.
type Notifier interface {
	AddNotification(text string) error
}

// ForecastRequirement computes required = campers * perCamper * duration
// and available = stock * duration. perCamper is the camp's configured
// food units per camper per day from the requirement side store.
func ForecastRequirement(c *Camp, perCamper int64) (Forecast, error) {
	if perCamper < 0 {
		return Forecast{}, fmt.Errorf("%w: food per camper must be non-negative", ErrValidation)
	}
	days := c.DurationDays()
	campers := len(c.Campers)
	return Forecast{
		CamperCount:  campers,
		DurationDays: days,
		Required:     int64(campers) * perCamper * int64(days),
		Available:    c.FoodStock * int64(days),
	}, nil
}

// ShortageCheck forecasts the camp's requirement and, on a shortage,
// appends a notification naming the camp, its remaining daily stock, and
// the required units. The camp itself is never mutated.
func ShortageCheck(c *Camp, perCamper int64, notifier Notifier) (Forecast, error) {
	forecast, err := ForecastRequirement(c, perCamper)
	if err != nil {
		return Forecast{}, err
	}
	if forecast.Shortage() && notifier != nil {
		text := fmt.Sprintf("Food shortage at %v! Only %v units left but %v needed.",
			c.Name, c.FoodStock, forecast.Required)
		if err := notifier.AddNotification(text); err != nil {
			return forecast, fmt.Errorf("[AddNotification]: %w", err)
		}
	}
	return forecast, nil
}

// Earnings is the camp's total pay over its duration: pay_rate is a
// per-day rate, so earnings = pay_rate * duration_days. This is the
// canonical earnings figure.
func Earnings(c *Camp) int64 {
	return c.PayRate * int64(c.DurationDays())
}

// RosterEarnings is the per-head variant: pay_rate * camper_count.
// It is a distinct metric, not an alternative definition of Earnings.
func RosterEarnings(c *Camp) int64 {
	return c.PayRate * int64(len(c.Campers))
}

// EngagementScore is a coarse activity-level proxy: the total number of
// recorded activity entries plus daily-record notes, unweighted.
func EngagementScore(c *Camp) int {
	score := 0
	for _, entries := range c.Activities {
		score += len(entries)
	}
	for _, notes := range c.DailyRecords {
		score += len(notes)
	}
	return score
}
