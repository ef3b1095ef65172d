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
	"net/http"

	"github.com/scoutforge/camp-ops-go/camp"
	campjson "github.com/scoutforge/camp-ops-go/json"
	"github.com/scoutforge/camp-ops-go/lib/authz"
	"github.com/scoutforge/camp-ops-go/lib/herr"
	"github.com/scoutforge/camp-ops-go/store"
)

type GetCamps struct {
	db *store.Store
}

func (action GetCamps) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getCamps(req)
	if errHTTP != nil {
		errHTTP.From("[getCamps]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetCamps) getCamps(req *http.Request) ([]*camp.Camp, *herr.HTTPError) {
	// Every role may list camps, so the authentication gate in the
	// middleware is the only check needed.
	if _, errHTTP := getJwtCtx(req); errHTTP != nil {
		return nil, errHTTP.From("[getJwtCtx]")
	}
	camps, errHTTP := loadCamps(action.db.Camps)
	if errHTTP != nil {
		return nil, errHTTP.From("[loadCamps]")
	}
	if camps == nil {
		camps = []*camp.Camp{}
	}
	return camps, nil
}

type GetCamp struct {
	db *store.Store
}

func (action GetCamp) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getCamp(req)
	if errHTTP != nil {
		errHTTP.From("[getCamp]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetCamp) getCamp(req *http.Request) (*camp.Camp, *herr.HTTPError) {
	if _, errHTTP := getJwtCtx(req); errHTTP != nil {
		return nil, errHTTP.From("[getJwtCtx]")
	}
	found, errHTTP := getCamp(action.db.Camps, req.PathValue("campName"))
	if errHTTP != nil {
		return nil, errHTTP.From("[getCamp]")
	}
	return found, nil
}

type PostCamp struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action PostCamp) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name, errHTTP := action.postCamp(req)
	if errHTTP != nil {
		errHTTP.From("[postCamp]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(name)
	herr.WriteCreatedResponse(w, name)
}

func (action PostCamp) postCamp(req *http.Request) (string, *herr.HTTPError) {
	if _, errHTTP := requirePermissions(req, action.admins, authz.ManageCamps); errHTTP != nil {
		return "", errHTTP.From("[requirePermissions]")
	}
	vals, errHTTP := readBodyAs[campjson.CampCreate](req)
	if errHTTP != nil {
		return "", errHTTP.From("[readBodyAs]")
	}
	newCamp, err := camp.New(
		vals.Name, vals.Location, camp.Type(vals.CampType),
		vals.StartDate, vals.EndDate, vals.FoodStock,
	)
	if err != nil {
		return "", campErr("Invalid camp", err).From("[New]")
	}
	if err = action.db.Camps.Create(newCamp); err != nil {
		return "", campErr("Failed to create camp", err).From("[Create]")
	}
	return newCamp.Name, nil
}

// PutCamp corrects a camp's identity and schedule in place, keeping its
// rosters, activities, and records. This is the repair path for a camp
// created with the wrong location or dates; deleting and recreating
// would drop the accumulated state.
type PutCamp struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action PutCamp) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name, errHTTP := action.putCamp(req)
	if errHTTP != nil {
		errHTTP.From("[putCamp]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(name)
	herr.WriteOKResponse(w, "Camp updated")
}

func (action PutCamp) putCamp(req *http.Request) (string, *herr.HTTPError) {
	if _, errHTTP := requirePermissions(req, action.admins, authz.ManageCamps); errHTTP != nil {
		return "", errHTTP.From("[requirePermissions]")
	}
	oldName := req.PathValue("campName")
	vals, errHTTP := readBodyAs[campjson.CampEdit](req)
	if errHTTP != nil {
		return "", errHTTP.From("[readBodyAs]")
	}
	err := action.db.Camps.Update(func(camps []*camp.Camp) ([]*camp.Camp, error) {
		existing, err := camp.ByName(camps, oldName)
		if err != nil {
			return nil, err
		}
		if vals.Name != oldName {
			if _, err := camp.ByName(camps, vals.Name); err == nil {
				return nil, fmt.Errorf("%w: a camp named %q already exists", camp.ErrValidation, vals.Name)
			}
		}
		edited, err := existing.Edit(
			vals.Name, vals.Location, camp.Type(vals.CampType),
			vals.StartDate, vals.EndDate, vals.FoodStock, vals.PayRate,
		)
		if err != nil {
			return nil, err
		}
		*existing = *edited
		return camps, nil
	})
	if err != nil {
		return "", campErr("Failed to update camp", err).From("[Update]")
	}
	if vals.Name != oldName {
		if err := action.db.FoodRequirements.Rename(oldName, vals.Name); err != nil {
			return "", herr.InternalServerError("Failed to move food requirement", err).From("[Rename]")
		}
	}
	return vals.Name, nil
}

type DeleteCamp struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action DeleteCamp) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name, errHTTP := action.deleteCamp(req)
	if errHTTP != nil {
		errHTTP.From("[deleteCamp]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(name)
	herr.WriteNoContentResponse(w, "Camp deleted")
}

func (action DeleteCamp) deleteCamp(req *http.Request) (string, *herr.HTTPError) {
	if _, errHTTP := requirePermissions(req, action.admins, authz.ManageCamps); errHTTP != nil {
		return "", errHTTP.From("[requirePermissions]")
	}
	name := req.PathValue("campName")
	if name == "" {
		return "", herr.BadRequest("No camp name was provided", nil)
	}
	if err := action.db.Camps.Delete(name); err != nil {
		return "", campErr("Failed to delete camp", err).From("[Delete]")
	}
	return name, nil
}
