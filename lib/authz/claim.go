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

package authz

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/scoutforge/camp-ops-go/directory"
)

// CampClaims are the JWT claims carried by every access and refresh
// token. Username and role ride in the token so most requests never
// touch the credential file.
type CampClaims struct {
	jwt.RegisteredClaims
	Username string `json:"usr"`
	Role     string `json:"rol"`
}

func (c CampClaims) WithExpiration(t time.Time) CampClaims {
	c.ExpiresAt = jwt.NewNumericDate(t)
	return c
}

func (c CampClaims) WithIssuedAt(t time.Time) CampClaims {
	c.IssuedAt = jwt.NewNumericDate(t)
	return c
}

func (c CampClaims) WithIssuer(s string) CampClaims {
	c.Issuer = s
	return c
}

func (c CampClaims) WithSubject(s string) CampClaims {
	c.Subject = s
	return c
}

func (c CampClaims) WithUsername(s string) CampClaims {
	c.Username = s
	return c
}

func (c CampClaims) WithRole(r directory.Role) CampClaims {
	c.Role = string(r)
	return c
}

func (c CampClaims) UserRole() directory.Role {
	return directory.Role(c.Role)
}
