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

package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/scoutforge/camp-ops-go/conf"
	"github.com/stretchr/testify/assert"
)

// TestMustInitConfig should be the only test in the whole repo that
// so freely plays around with environment variables, since parallel
// testing means other tests will notice the result of "Setenvs" that
// occur at the same time.
//
// All other tests should use a conf.CampOpsConfig struct instead, as that
// is unaffected by environment variables changing later.
func TestMustInitConfig(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("CAMP_HOSTNAME", "host")
	t.Setenv("CAMP_PORT", "1234")
	t.Setenv("CAMP_DEPLOYMENT", "dev")
	t.Setenv("CAMP_REFRESH_TOKEN_LIFETIME", "1000")
	t.Setenv("CAMP_ACCESS_TOKEN_LIFETIME", "100")
	t.Setenv("CAMP_DIRECTORY_CACHE_TTL", "15m")
	t.Setenv("CAMP_LOG_LEVEL", "WARN")
	t.Setenv("CAMP_ADMINS", "alice,bob")
	t.Setenv("CAMP_JWT_SECRET", "shhh")
	t.Setenv("CAMP_DATA_DIR", tempDir)
	t.Setenv("CAMP_MAX_REQUEST_BYTES", "2048")

	cfg := mustInitConfig(".env")

	assert.Equal(t, "host", cfg.Core.Host)
	assert.Equal(t, int32(1234), cfg.Core.Port)
	assert.Equal(t, "dev", cfg.Core.Deployment)
	assert.Equal(t, 1000*time.Second, cfg.Core.RefreshTokenLifetime)
	assert.Equal(t, 100*time.Second, cfg.Core.AccessTokenLifetime)
	assert.Equal(t, 15*time.Minute, cfg.Directory.InMemoryCacheTTL)
	assert.Equal(t, "WARN", cfg.Core.LogLevel)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Core.Admins)
	assert.Equal(t, "shhh", cfg.Core.JWTSecret)
	assert.Equal(t, tempDir, cfg.Store.DataDir)
	assert.Equal(t, int64(2048), cfg.Core.MaxRequestBytes)
}

func TestRunServer(t *testing.T) {
	t.Parallel()
	cfg := conf.DefaultCampOps()

	// this will have the server pick a random port
	cfg.Core.Port = 0
	cfg.Store.DataDir = t.TempDir()

	// Start the server, then cancel it.
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	exitCode := runServerInternal(ctx, cfg, true, make(chan string, 1))
	assert.Equal(t, 69, exitCode)
}
