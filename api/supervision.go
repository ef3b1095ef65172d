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

// PostSupervision reworks which camps the calling scout leader
// supervises. The leader picks camps by their one-based position in the
// camp listing, and the selection replaces their previous set in full.
type PostSupervision struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action PostSupervision) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.postSupervision(req)
	if errHTTP != nil {
		errHTTP.From("[postSupervision]").WriteResponse(w)
		return
	}
	for _, name := range resp.Supervised {
		action.es.notifyCampUpdate(name)
	}
	mustWriteJSON(w, req, resp)
}

func (action PostSupervision) postSupervision(req *http.Request) (campjson.SupervisionResult, *herr.HTTPError) {
	var empty campjson.SupervisionResult

	jwtCtx, errHTTP := requirePermissions(req, action.admins, authz.SuperviseCamps)
	if errHTTP != nil {
		return empty, errHTTP.From("[requirePermissions]")
	}
	leader := jwtCtx.Claims.Username

	vals, errHTTP := readBodyAs[campjson.SupervisionRequest](req)
	if errHTTP != nil {
		return empty, errHTTP.From("[readBodyAs]")
	}

	var result campjson.SupervisionResult
	err := action.db.Camps.Update(func(camps []*camp.Camp) ([]*camp.Camp, error) {
		names, err := camp.SelectByIndices(vals.CampNumbers, camps)
		if err != nil {
			return nil, fmt.Errorf("[SelectByIndices]: %w", err)
		}
		supervised, err := camp.AssignLeaderToCamps(leader, names, camps)
		if err != nil {
			return nil, fmt.Errorf("[AssignLeaderToCamps]: %w", err)
		}
		result = campjson.SupervisionResult{Leader: leader, Supervised: supervised}
		return camps, nil
	})
	if err != nil {
		return empty, campErr("Failed to assign supervision", err).From("[Update]")
	}
	return result, nil
}

type PostCampers struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action PostCampers) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.postCampers(req)
	if errHTTP != nil {
		errHTTP.From("[postCampers]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(req.PathValue("campName"))
	mustWriteJSON(w, req, resp)
}

func (action PostCampers) postCampers(req *http.Request) (campjson.CamperAssignmentResult, *herr.HTTPError) {
	var empty campjson.CamperAssignmentResult

	if _, errHTTP := requirePermissions(req, action.admins, authz.SuperviseCamps); errHTTP != nil {
		return empty, errHTTP.From("[requirePermissions]")
	}
	campName := req.PathValue("campName")
	vals, errHTTP := readBodyAs[campjson.CamperAssignment](req)
	if errHTTP != nil {
		return empty, errHTTP.From("[readBodyAs]")
	}

	var added []string
	err := action.db.Camps.Update(func(camps []*camp.Camp) ([]*camp.Camp, error) {
		target, err := camp.ByName(camps, campName)
		if err != nil {
			return nil, err
		}
		added = target.AssignCampers(vals.Campers)
		return camps, nil
	})
	if err != nil {
		return empty, campErr("Failed to assign campers", err).From("[Update]")
	}
	if added == nil {
		added = []string{}
	}
	return campjson.CamperAssignmentResult{Added: added}, nil
}

// ImportCampers bulk-enrolls campers from an uploaded CSV roster. Rows
// that fail to parse are reported but don't fail the import, and a
// camper already enrolled in a different camp is skipped so that nobody
// ends up double-registered.
type ImportCampers struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action ImportCampers) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.importCampers(req)
	if errHTTP != nil {
		errHTTP.From("[importCampers]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(req.PathValue("campName"))
	mustWriteJSON(w, req, resp)
}

func (action ImportCampers) importCampers(req *http.Request) (campjson.CamperImportResult, *herr.HTTPError) {
	var empty campjson.CamperImportResult

	if _, errHTTP := requirePermissions(req, action.admins, authz.SuperviseCamps); errHTTP != nil {
		return empty, errHTTP.From("[requirePermissions]")
	}
	campName := req.PathValue("campName")

	defer shut(req.Body)
	rows, rowErrs := camp.ParseRoster(req.Body)

	var result camp.ImportResult
	err := action.db.Camps.Update(func(camps []*camp.Camp) ([]*camp.Camp, error) {
		var err error
		result, err = camp.BulkImportCampers(campName, rows, camps)
		if err != nil {
			return nil, fmt.Errorf("[BulkImportCampers]: %w", err)
		}
		return camps, nil
	})
	if err != nil {
		return empty, campErr("Failed to import campers", err).From("[Update]")
	}

	resp := campjson.CamperImportResult{
		Added:      len(result.Added),
		CamperRows: len(rows),
	}
	for _, collision := range result.Skipped {
		resp.Skipped = append(resp.Skipped,
			fmt.Sprintf("%s is already enrolled in %s", collision.Camper, collision.Camp))
	}
	for _, rowErr := range rowErrs {
		resp.RowErrors = append(resp.RowErrors, rowErr.Error())
	}
	return resp, nil
}
