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

package conf_test

import (
	"testing"
	"time"

	"github.com/scoutforge/camp-ops-go/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, conf.DefaultCampOps().Validate())
}

func TestValidateCatchesBadValues(t *testing.T) {
	t.Parallel()

	c := conf.DefaultCampOps()
	c.Core.Deployment = "laptop"
	c.Core.LogLevel = "CHATTY"
	c.Store.DataDir = ""
	c.Core.JWTSecret = ""
	c.Core.AccessTokenLifetime = 10 * time.Hour
	c.Core.RefreshTokenLifetime = 1 * time.Hour

	err := c.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "deployment type")
	assert.ErrorContains(t, err, "log level")
	assert.ErrorContains(t, err, "data directory")
	assert.ErrorContains(t, err, "JWT secret")
	assert.ErrorContains(t, err, "token lifetime")
}

func TestStringRedactsSecrets(t *testing.T) {
	t.Parallel()

	c := conf.DefaultCampOps()
	c.Core.JWTSecret = "super-secret-value"
	printed := c.String()
	assert.NotContains(t, printed, "super-secret-value")
	assert.Contains(t, printed, "JWTSecret")
	assert.Contains(t, printed, "DataDir")
}
