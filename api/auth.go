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

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/scoutforge/camp-ops-go/directory"
	"github.com/scoutforge/camp-ops-go/lib/authn"
	"github.com/scoutforge/camp-ops-go/lib/authz"
	"github.com/scoutforge/camp-ops-go/lib/herr"
)

type PostAuth struct {
	userStore            *directory.UserStore
	jwtSecret            string
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

type PostAuthRequest struct {
	Identification string `json:"identification"`
	Password       string `json:"password"`
}
type PostAuthResponse struct {
	Token         string `json:"token"`
	ExpiresUnixMs int64  `json:"expires_unix_ms"`
}

func (action PostAuth) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.postAuth(w, req)
	if errHTTP != nil {
		errHTTP.From("[postAuth]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action PostAuth) postAuth(w http.ResponseWriter, req *http.Request) (PostAuthResponse, *herr.HTTPError) {
	var empty PostAuthResponse

	vals, errHTTP := readBodyAs[PostAuthRequest](req)
	if errHTTP != nil {
		return empty, errHTTP.From("[readBodyAs]")
	}

	users, err := action.userStore.Users(req.Context())
	if err != nil {
		return empty, herr.InternalServerError("Failed to fetch personnel", err).From("[Users]")
	}
	var matched *directory.User
	for i, user := range users {
		if strings.EqualFold(user.Username, vals.Identification) {
			matched = &users[i]
			break
		}
	}
	if matched == nil {
		return empty, herr.Unauthorized("Failed login attempt (bad credentials)",
			fmt.Errorf("login attempt for nonexistent user. Identification: %v", vals.Identification)).
			SetExpectedError()
	}
	if matched.Disabled {
		return empty, herr.Unauthorized("This login has been disabled",
			fmt.Errorf("login attempt for disabled user %v", matched.Username)).
			SetExpectedError()
	}

	correct, err := authn.Verify(vals.Password, matched.PasswordHash)
	if err != nil {
		return empty, herr.InternalServerError("Failed to verify password", err).From("[Verify]")
	}
	if !correct {
		return empty, herr.Unauthorized("Failed login attempt (bad credentials)",
			fmt.Errorf("bad password for valid user. Identification: %v", vals.Identification)).
			SetExpectedError()
	}
	slog.Info("Successful login", "username", matched.Username, "role", matched.Role)

	jwter := authz.JWTer{SecretKey: action.jwtSecret}
	accessTokenExpiration := time.Now().Add(action.accessTokenDuration)
	accessToken, err := jwter.CreateAccessToken(matched.Username, matched.Role, accessTokenExpiration)
	if err != nil {
		return empty, herr.InternalServerError("Failed to create access token", err).From("[CreateAccessToken]")
	}

	// The refresh token should be valid much longer than the access token.
	refreshTokenExpiration := time.Now().Add(action.refreshTokenDuration)
	refreshToken, err := jwter.CreateRefreshToken(matched.Username, refreshTokenExpiration)
	if err != nil {
		return empty, herr.InternalServerError("Failed to create refresh token", err).From("[CreateRefreshToken]")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authz.RefreshTokenCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(action.refreshTokenDuration.Milliseconds() / 1000),
		HttpOnly: true,
		Secure:   true,
		// We only ever read this cookie on POSTs to the refresh endpoint,
		// so strict is fine.
		SameSite: http.SameSiteStrictMode,
	})

	suggestedRefreshTime := accessTokenExpiration.Add(authz.SuggestedEarlyAccessTokenRefresh).UnixMilli()
	return PostAuthResponse{Token: accessToken, ExpiresUnixMs: suggestedRefreshTime}, nil
}

type GetAuth struct {
	admins []string
}

type GetAuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	User          string `json:"user,omitzero"`
	Role          string `json:"role,omitzero"`
	Admin         bool   `json:"admin"`
}

func (action GetAuth) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// This endpoint is unauthenticated (doesn't require an Authorization header).
	resp := GetAuthResponse{}

	jwtCtx, found := req.Context().Value(JWTContextKey).(JWTContext)
	if !found || jwtCtx.Error != nil || jwtCtx.Claims == nil {
		resp.Authenticated = false
		mustWriteJSON(w, req, resp)
		return
	}
	claims := jwtCtx.Claims
	resp.Authenticated = true
	resp.User = claims.Username
	resp.Role = claims.Role
	resp.Admin = claims.UserRole() == directory.RoleAdmin ||
		slices.Contains(action.admins, claims.Username)

	mustWriteJSON(w, req, resp)
}

type RefreshAccessToken struct {
	userStore           *directory.UserStore
	jwtSecret           string
	accessTokenDuration time.Duration
}

type RefreshAccessTokenResponse struct {
	Token         string `json:"token"`
	ExpiresUnixMs int64  `json:"expires_unix_ms"`
}

func (action RefreshAccessToken) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.refresh(req)
	if errHTTP != nil {
		errHTTP.From("[refresh]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action RefreshAccessToken) refresh(req *http.Request) (RefreshAccessTokenResponse, *herr.HTTPError) {
	var empty RefreshAccessTokenResponse

	refreshCookie, err := req.Cookie(authz.RefreshTokenCookieName)
	if err != nil {
		return empty, herr.Unauthorized("Bad or no refresh token cookie found", err).SetExpectedError()
	}
	jwter := authz.JWTer{SecretKey: action.jwtSecret}
	claims, err := jwter.AuthenticateJWT(refreshCookie.Value)
	if err != nil {
		return empty, herr.Unauthorized("Failed to authenticate refresh token", err).SetExpectedError()
	}
	slog.Info("Refreshing access token", "username", claims.Username)

	// The role rides in the access token, so look it up fresh here.
	// This is what makes role changes and disablement take effect on
	// refresh rather than only on the next full login.
	user, found, err := action.userStore.Lookup(req.Context(), claims.Username)
	if err != nil {
		return empty, herr.InternalServerError("Failed to fetch personnel", err).From("[Lookup]")
	}
	if !found {
		return empty, herr.Unauthorized("This user no longer exists",
			fmt.Errorf("refresh attempt for deleted user %v", claims.Username)).SetExpectedError()
	}
	if user.Disabled {
		return empty, herr.Unauthorized("This login has been disabled",
			fmt.Errorf("refresh attempt for disabled user %v", user.Username)).SetExpectedError()
	}

	accessTokenExpiration := time.Now().Add(action.accessTokenDuration)
	accessToken, err := jwter.CreateAccessToken(user.Username, user.Role, accessTokenExpiration)
	if err != nil {
		return empty, herr.InternalServerError("Failed to create access token", err).From("[CreateAccessToken]")
	}
	return RefreshAccessTokenResponse{
		Token:         accessToken,
		ExpiresUnixMs: accessTokenExpiration.Add(authz.SuggestedEarlyAccessTokenRefresh).UnixMilli(),
	}, nil
}
