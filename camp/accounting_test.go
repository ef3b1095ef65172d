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

package camp_test

import (
	"testing"

	"github.com/scoutforge/camp-ops-go/camp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	texts []string
}

func (f *fakeNotifier) AddNotification(text string) error {
	f.texts = append(f.texts, text)
	return nil
}

func TestShortageCheck(t *testing.T) {
	t.Parallel()

	// 5-day camp, stock 10/day, 3 campers
	c := mustCamp(t, "Pines", "2024-06-01", "2024-06-05")
	c.FoodStock = 10
	c.AssignCampers([]string{"a", "b", "c"})

	notifier := &fakeNotifier{}

	// 1 unit per camper per day: 15 required vs 50 available
	forecast, err := camp.ShortageCheck(c, 1, notifier)
	require.NoError(t, err)
	assert.Equal(t, int64(15), forecast.Required)
	assert.Equal(t, int64(50), forecast.Available)
	assert.Equal(t, 5, forecast.DurationDays)
	assert.False(t, forecast.Shortage())
	assert.Empty(t, notifier.texts)

	// 4 units per camper per day: 60 required vs 50 available
	forecast, err = camp.ShortageCheck(c, 4, notifier)
	require.NoError(t, err)
	assert.Equal(t, int64(60), forecast.Required)
	assert.True(t, forecast.Shortage())
	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0], "Pines")
	assert.Contains(t, notifier.texts[0], "10")
	assert.Contains(t, notifier.texts[0], "60")

	// the check never mutates the camp
	assert.Equal(t, int64(10), c.FoodStock)

	_, err = camp.ShortageCheck(c, -1, notifier)
	require.ErrorIs(t, err, camp.ErrValidation)
}

func TestEarnings(t *testing.T) {
	t.Parallel()

	c := mustCamp(t, "Trek", "2024-06-01", "2024-06-04")
	c.PayRate = 25
	c.AssignCampers([]string{"a", "b", "c", "d", "e"})

	// canonical figure: day rate over the duration
	assert.Equal(t, int64(100), camp.Earnings(c))
	// separate per-head metric
	assert.Equal(t, int64(125), camp.RosterEarnings(c))
}

func TestEngagementScore(t *testing.T) {
	t.Parallel()

	c := mustCamp(t, "Pines", "2024-06-01", "2024-06-01")
	assert.Equal(t, 0, camp.EngagementScore(c))

	c.Activities = map[string][]camp.ActivityEntry{
		"2024-06-01": {{Activity: "hike"}, {Activity: "swim"}},
	}
	c.DailyRecords = map[string][]string{
		"2024-06-01": {"good day"},
	}
	assert.Equal(t, 3, camp.EngagementScore(c))
}
