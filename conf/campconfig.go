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

package conf

import (
	"crypto/rand"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/scoutforge/camp-ops-go/lib/redact"
)

// DefaultCampOps is the base configuration for the camp-ops server.
// It gets overridden by values in a .env file, then the result of that
// gets overridden by environment variables.
func DefaultCampOps() *CampOpsConfig {
	return &CampOpsConfig{
		Core: ConfigCore{
			Host:                 "localhost",
			Port:                 8080,
			JWTSecret:            rand.Text(),
			Deployment:           "dev",
			LogLevel:             "INFO",
			AccessTokenLifetime:  15 * time.Minute,
			RefreshTokenLifetime: 8 * time.Hour,
			MaxRequestBytes:      1 << 20,
		},
		Store: FileStore{
			DataDir: "data",
		},
		Directory: Directory{
			InMemoryCacheTTL: 1 * time.Minute,
		},
	}
}

type CampOpsConfig struct {
	Core      ConfigCore
	Store     FileStore
	Directory Directory
}

type ConfigCore struct {
	Host                 string
	Port                 int32
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration

	// Admins are usernames granted user-management permission on top
	// of whatever their role in the credential file grants.
	Admins []string

	JWTSecret  string `redact:"true"`
	Deployment string

	// LogLevel should be one of DEBUG, INFO, WARN, or ERROR
	LogLevel string

	// MaxRequestBytes is a hard limit on request sizes that will be permitted by the API server.
	// This serves as a backstop against accidentally or maliciously large requests.
	MaxRequestBytes int64
}

// FileStore locates the flat-file data directory holding the camp
// document, credential files, notifications, and messages.
type FileStore struct {
	DataDir string
}

type Directory struct {
	// InMemoryCacheTTL bounds how stale the cached credential file may
	// be. Edits through the server invalidate the cache themselves, so
	// this only matters for edits made directly on disk.
	InMemoryCacheTTL time.Duration
}

type DeploymentType string

const (
	DeploymentTypeDev        DeploymentType = "dev"
	DeploymentTypeStaging    DeploymentType = "staging"
	DeploymentTypeProduction DeploymentType = "production"
)

func (d DeploymentType) Validate() error {
	switch d {
	case DeploymentTypeDev, DeploymentTypeStaging, DeploymentTypeProduction:
		return nil
	default:
		return fmt.Errorf("unknown deployment type %v", d)
	}
}

// Validate should be called after a CampOpsConfig has been fully configured.
func (c *CampOpsConfig) Validate() error {
	var errs []error
	errs = append(errs, DeploymentType(c.Core.Deployment).Validate())
	if !slices.Contains([]string{"DEBUG", "INFO", "WARN", "ERROR"}, c.Core.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %v", c.Core.LogLevel))
	}
	if c.Store.DataDir == "" {
		errs = append(errs, errors.New("a data directory must be provided"))
	}
	if c.Core.JWTSecret == "" {
		errs = append(errs, errors.New("a JWT secret must be provided"))
	}
	if c.Core.AccessTokenLifetime > c.Core.RefreshTokenLifetime {
		errs = append(errs, errors.New("access token lifetime should not be greater than refresh token lifetime"))
	}
	return errors.Join(errs...)
}

func (c *CampOpsConfig) PrintRedacted() string {
	return c.String()
}

func (c *CampOpsConfig) String() string {
	b, err := redact.ToBytes(c)
	if err != nil {
		return fmt.Sprintf("config could not be printed: %v", err)
	}
	return string(b)
}
