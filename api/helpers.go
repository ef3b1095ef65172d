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
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/scoutforge/camp-ops-go/camp"
	"github.com/scoutforge/camp-ops-go/lib/authz"
	"github.com/scoutforge/camp-ops-go/lib/herr"
	"github.com/scoutforge/camp-ops-go/store"
)

func readBodyAs[T any](req *http.Request) (T, *herr.HTTPError) {
	empty := *new(T)
	defer shut(req.Body)
	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		return empty, herr.BadRequest("Failed to read request body", err).From("[io.ReadAll]")
	}
	var t T
	err = json.Unmarshal(bodyBytes, &t)
	if err != nil {
		return empty, herr.BadRequest("Failed to unmarshal request body", err).From("[Unmarshal]")
	}
	return t, nil
}

func mustWriteJSON(w http.ResponseWriter, req *http.Request, resp any) (success bool) {
	marshalled, err := json.Marshal(resp)
	if err != nil {
		herr.InternalServerError("Failed to marshal JSON", err).From("[Marshal]").WriteResponse(w)
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(marshalled)
	if err != nil {
		herr.InternalServerError("Failed to write JSON", err).From("[Write]").WriteResponse(w)
		return false
	}
	return true
}

func getJwtCtx(req *http.Request) (JWTContext, *herr.HTTPError) {
	jwtCtx, found := req.Context().Value(JWTContextKey).(JWTContext)
	if !found {
		return JWTContext{}, herr.InternalServerError("This endpoint has been misconfigured", nil)
	}
	return jwtCtx, nil
}

// requirePermissions is the authorization gate used by every
// authenticated handler: it reads the JWT from the request context and
// checks that the caller's role grants all bits of mask.
func requirePermissions(req *http.Request, admins []string, mask authz.PermissionMask) (JWTContext, *herr.HTTPError) {
	jwtCtx, errHTTP := getJwtCtx(req)
	if errHTTP != nil {
		return JWTContext{}, errHTTP.From("[getJwtCtx]")
	}
	perms := authz.Permissions(jwtCtx.Claims.UserRole(), jwtCtx.Claims.Username, admins)
	if perms&mask != mask {
		return JWTContext{}, herr.Forbidden("The requestor does not have permission to do this", nil).
			SetExpectedError()
	}
	return jwtCtx, nil
}

func loadCamps(campStore *store.CampStore) ([]*camp.Camp, *herr.HTTPError) {
	camps, _, err := campStore.Load()
	if err != nil {
		return nil, herr.InternalServerError("Failed to load camps", err).From("[Load]")
	}
	return camps, nil
}

func getCamp(campStore *store.CampStore, name string) (*camp.Camp, *herr.HTTPError) {
	if name == "" {
		return nil, herr.BadRequest("No camp name was provided", nil)
	}
	camps, errHTTP := loadCamps(campStore)
	if errHTTP != nil {
		return nil, errHTTP.From("[loadCamps]")
	}
	found, err := camp.ByName(camps, name)
	if err != nil {
		return nil, herr.NotFound("Camp not found", err).SetExpectedError()
	}
	return found, nil
}

// campErr maps domain and store errors onto HTTP statuses. Scheduling
// conflicts and lost revision races both surface as 409s.
func campErr(userMessage string, err error) *herr.HTTPError {
	switch {
	case errors.Is(err, camp.ErrNotFound):
		return herr.NotFound(userMessage, err).SetExpectedError()
	case errors.Is(err, camp.ErrValidation):
		return herr.BadRequest(userMessage, err).SetExpectedError()
	case errors.Is(err, camp.ErrConflict):
		return herr.Conflict(userMessage, err).SetExpectedError()
	case errors.Is(err, store.ErrStaleRevision):
		return herr.Conflict(userMessage, err)
	default:
		return herr.InternalServerError(userMessage, err)
	}
}

func shut(c io.Closer) {
	err := c.Close()
	if err != nil {
		slog.Error("Failed to close Closer", "error", err)
	}
}
