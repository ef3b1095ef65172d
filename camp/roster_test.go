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
	"strings"
	"testing"

	"github.com/scoutforge/camp-ops-go/camp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoster(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Name,Age,Activities",
		"Sam,11,climbing; swimming",
		"Alex,12,",
		",10,hiking",
		"Jo,9,archery",
	}, "\n")

	rows, errs := camp.ParseRoster(strings.NewReader(input))
	// the blank-name row is reported, not fatal
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], camp.ErrValidation)

	require.Len(t, rows, 3)
	assert.Equal(t, camp.RosterRow{Name: "Sam", Age: "11", Activities: []string{"climbing", "swimming"}}, rows[0])
	assert.Equal(t, camp.RosterRow{Name: "Alex", Age: "12"}, rows[1])
	assert.Equal(t, camp.RosterRow{Name: "Jo", Age: "9", Activities: []string{"archery"}}, rows[2])
}

func TestParseRosterMissingNameColumn(t *testing.T) {
	t.Parallel()

	_, errs := camp.ParseRoster(strings.NewReader("Who,Age\nSam,11\n"))
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], camp.ErrValidation)
}

func TestParseRosterEmptyInput(t *testing.T) {
	t.Parallel()

	_, errs := camp.ParseRoster(strings.NewReader(""))
	require.Len(t, errs, 1)
}
