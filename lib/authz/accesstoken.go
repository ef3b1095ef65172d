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

	"github.com/scoutforge/camp-ops-go/directory"
)

// SuggestedEarlyAccessTokenRefresh is how long before an access token
// actually expires that clients should consider refreshing it. By the
// time the server processes a request made with a nearly-expired token,
// the token may no longer be valid.
const SuggestedEarlyAccessTokenRefresh time.Duration = -10 * time.Second

const issuer = "camp-ops"

// RefreshTokenCookieName is the HttpOnly cookie holding the refresh
// token. Only the token refresh endpoint ever reads it.
const RefreshTokenCookieName = "camp_ops_refresh_token"

// CreateAccessToken makes the short-lived token presented on every
// authenticated request.
func (j JWTer) CreateAccessToken(
	username string,
	role directory.Role,
	expiration time.Time,
) (string, error) {
	return j.createJWT(
		CampClaims{}.
			WithIssuedAt(time.Now()).
			WithExpiration(expiration).
			WithIssuer(issuer).
			WithSubject(username).
			WithUsername(username).
			WithRole(role),
	)
}

// CreateRefreshToken makes the long-lived token that can be exchanged
// for fresh access tokens. It intentionally carries no role, so that a
// role change or account disablement takes effect on the next refresh.
func (j JWTer) CreateRefreshToken(username string, expiration time.Time) (string, error) {
	return j.createJWT(
		CampClaims{}.
			WithIssuedAt(time.Now()).
			WithExpiration(expiration).
			WithIssuer(issuer).
			WithSubject(username).
			WithUsername(username),
	)
}

// AuthenticateJWT gives JWT claims for a valid, authenticated JWT string, or
// returns an error otherwise. A JWT may be invalid because it was signed by a
// different key, because it has expired, etc.
func (j JWTer) AuthenticateJWT(jwtStr string) (*CampClaims, error) {
	return j.authenticateJWT(jwtStr)
}
