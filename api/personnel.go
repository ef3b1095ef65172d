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
	"errors"
	"log/slog"
	"net/http"

	"github.com/scoutforge/camp-ops-go/directory"
	campjson "github.com/scoutforge/camp-ops-go/json"
	"github.com/scoutforge/camp-ops-go/lib/authn"
	"github.com/scoutforge/camp-ops-go/lib/authz"
	"github.com/scoutforge/camp-ops-go/lib/herr"
)

func directoryErr(userMessage string, err error) *herr.HTTPError {
	switch {
	case errors.Is(err, directory.ErrUnknownUser):
		return herr.NotFound(userMessage, err).SetExpectedError()
	case errors.Is(err, directory.ErrDuplicateUser):
		return herr.Conflict(userMessage, err).SetExpectedError()
	case errors.Is(err, directory.ErrBadRole), errors.Is(err, directory.ErrBadUsername):
		return herr.BadRequest(userMessage, err).SetExpectedError()
	default:
		return herr.InternalServerError(userMessage, err)
	}
}

type GetPersonnel struct {
	userStore *directory.UserStore
	admins    []string
}

func (action GetPersonnel) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getPersonnel(req)
	if errHTTP != nil {
		errHTTP.From("[getPersonnel]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetPersonnel) getPersonnel(req *http.Request) ([]campjson.Person, *herr.HTTPError) {
	if _, errHTTP := requirePermissions(req, action.admins, authz.ManageUsers); errHTTP != nil {
		return nil, errHTTP.From("[requirePermissions]")
	}
	users, err := action.userStore.Users(req.Context())
	if err != nil {
		return nil, herr.InternalServerError("Failed to list users", err).From("[Users]")
	}
	resp := make([]campjson.Person, 0, len(users))
	for _, user := range users {
		resp = append(resp, campjson.Person{
			Username: user.Username,
			Role:     string(user.Role),
			Disabled: user.Disabled,
		})
	}
	return resp, nil
}

type PostPersonnel struct {
	userStore *directory.UserStore
	admins    []string
}

func (action PostPersonnel) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.postPersonnel(req)
	if errHTTP != nil {
		errHTTP.From("[postPersonnel]").WriteResponse(w)
		return
	}
	herr.WriteCreatedResponse(w, "User created")
}

func (action PostPersonnel) postPersonnel(req *http.Request) *herr.HTTPError {
	jwtCtx, errHTTP := requirePermissions(req, action.admins, authz.ManageUsers)
	if errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	vals, errHTTP := readBodyAs[campjson.PersonCreate](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	if vals.Password == "" {
		return herr.BadRequest("A password is required", nil).SetExpectedError()
	}
	hash := authn.NewSaltedArgon2idDevOnly(vals.Password)
	err := action.userStore.Add(req.Context(), directory.Role(vals.Role), vals.Username, hash)
	if err != nil {
		return directoryErr("Failed to create user", err).From("[Add]")
	}
	slog.Info("Created user",
		"username", vals.Username, "role", vals.Role, "by", jwtCtx.Claims.Username)
	return nil
}

type DeletePersonnel struct {
	userStore *directory.UserStore
	admins    []string
}

func (action DeletePersonnel) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.deletePersonnel(req)
	if errHTTP != nil {
		errHTTP.From("[deletePersonnel]").WriteResponse(w)
		return
	}
	herr.WriteNoContentResponse(w, "User deleted")
}

func (action DeletePersonnel) deletePersonnel(req *http.Request) *herr.HTTPError {
	jwtCtx, errHTTP := requirePermissions(req, action.admins, authz.ManageUsers)
	if errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	username := req.PathValue("username")
	if username == jwtCtx.Claims.Username {
		return herr.BadRequest("You may not delete your own account", nil).SetExpectedError()
	}
	if err := action.userStore.Delete(req.Context(), username); err != nil {
		return directoryErr("Failed to delete user", err).From("[Delete]")
	}
	slog.Info("Deleted user", "username", username, "by", jwtCtx.Claims.Username)
	return nil
}

type PostPassword struct {
	userStore *directory.UserStore
	admins    []string
}

func (action PostPassword) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.postPassword(req)
	if errHTTP != nil {
		errHTTP.From("[postPassword]").WriteResponse(w)
		return
	}
	herr.WriteOKResponse(w, "Password updated")
}

func (action PostPassword) postPassword(req *http.Request) *herr.HTTPError {
	if _, errHTTP := requirePermissions(req, action.admins, authz.ManageUsers); errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	vals, errHTTP := readBodyAs[campjson.PasswordReset](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	if vals.Password == "" {
		return herr.BadRequest("A password is required", nil).SetExpectedError()
	}
	hash := authn.NewSaltedArgon2idDevOnly(vals.Password)
	err := action.userStore.SetPassword(req.Context(), req.PathValue("username"), hash)
	if err != nil {
		return directoryErr("Failed to set password", err).From("[SetPassword]")
	}
	return nil
}

// PostDisabled flips a user's login lockout. Disabling takes effect on
// the user's next token refresh, not on tokens already in flight.
type PostDisabled struct {
	userStore *directory.UserStore
	admins    []string
}

func (action PostDisabled) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.postDisabled(req)
	if errHTTP != nil {
		errHTTP.From("[postDisabled]").WriteResponse(w)
		return
	}
	herr.WriteOKResponse(w, "User login updated")
}

func (action PostDisabled) postDisabled(req *http.Request) *herr.HTTPError {
	jwtCtx, errHTTP := requirePermissions(req, action.admins, authz.ManageUsers)
	if errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	username := req.PathValue("username")
	if username == jwtCtx.Claims.Username {
		return herr.BadRequest("You may not disable your own account", nil).SetExpectedError()
	}
	vals, errHTTP := readBodyAs[campjson.DisabledFlag](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	var err error
	if vals.Disabled {
		err = action.userStore.Disable(req.Context(), username)
	} else {
		err = action.userStore.Enable(req.Context(), username)
	}
	if err != nil {
		return directoryErr("Failed to update user login", err).From("[edit]")
	}
	slog.Info("Updated user login",
		"username", username, "disabled", vals.Disabled, "by", jwtCtx.Claims.Username)
	return nil
}
