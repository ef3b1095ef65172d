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

// updateCamp runs one mutation against the named camp inside the
// standard load -> mutate -> save transaction.
func updateCamp(db *store.Store, campName string, mutate func(*camp.Camp) error) error {
	return db.Camps.Update(func(camps []*camp.Camp) ([]*camp.Camp, error) {
		target, err := camp.ByName(camps, campName)
		if err != nil {
			return nil, err
		}
		if err = mutate(target); err != nil {
			return nil, err
		}
		return camps, nil
	})
}

type PostActivity struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action PostActivity) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.postActivity(req)
	if errHTTP != nil {
		errHTTP.From("[postActivity]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(req.PathValue("campName"))
	herr.WriteCreatedResponse(w, "Activity logged")
}

func (action PostActivity) postActivity(req *http.Request) *herr.HTTPError {
	if _, errHTTP := requirePermissions(req, action.admins, authz.SuperviseCamps); errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	vals, errHTTP := readBodyAs[campjson.ActivityLog](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	entry := camp.ActivityEntry{
		Activity: vals.Activity,
		Time:     vals.Time,
		Notes:    vals.Notes,
		FoodUsed: vals.FoodUsed,
	}
	err := updateCamp(action.db, req.PathValue("campName"), func(c *camp.Camp) error {
		return c.LogActivity(vals.Date, entry)
	})
	if err != nil {
		return campErr("Failed to log activity", err).From("[updateCamp]")
	}
	return nil
}

type PostDailyRecord struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action PostDailyRecord) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.postDailyRecord(req)
	if errHTTP != nil {
		errHTTP.From("[postDailyRecord]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(req.PathValue("campName"))
	herr.WriteCreatedResponse(w, "Daily record noted")
}

func (action PostDailyRecord) postDailyRecord(req *http.Request) *herr.HTTPError {
	if _, errHTTP := requirePermissions(req, action.admins, authz.SuperviseCamps); errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	vals, errHTTP := readBodyAs[campjson.DailyRecord](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	err := updateCamp(action.db, req.PathValue("campName"), func(c *camp.Camp) error {
		c.NoteDailyRecord(vals.Date, vals.Notes)
		return nil
	})
	if err != nil {
		return campErr("Failed to note daily record", err).From("[updateCamp]")
	}
	return nil
}

type PostFoodTopUp struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action PostFoodTopUp) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.postFoodTopUp(req)
	if errHTTP != nil {
		errHTTP.From("[postFoodTopUp]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(req.PathValue("campName"))
	herr.WriteOKResponse(w, "Food stock updated")
}

func (action PostFoodTopUp) postFoodTopUp(req *http.Request) *herr.HTTPError {
	if _, errHTTP := requirePermissions(req, action.admins, authz.ManageCamps); errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	vals, errHTTP := readBodyAs[campjson.FoodTopUp](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	err := updateCamp(action.db, req.PathValue("campName"), func(c *camp.Camp) error {
		return c.AllocateExtraFood(vals.Units)
	})
	if err != nil {
		return campErr("Failed to top up food stock", err).From("[updateCamp]")
	}
	return nil
}

// PutFoodStock sets the camp's daily stock to an absolute count,
// where PostFoodTopUp only adds to it.
type PutFoodStock struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action PutFoodStock) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.putFoodStock(req)
	if errHTTP != nil {
		errHTTP.From("[putFoodStock]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(req.PathValue("campName"))
	herr.WriteOKResponse(w, "Food stock set")
}

func (action PutFoodStock) putFoodStock(req *http.Request) *herr.HTTPError {
	if _, errHTTP := requirePermissions(req, action.admins, authz.ManageCamps); errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	vals, errHTTP := readBodyAs[campjson.FoodStockSet](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	err := updateCamp(action.db, req.PathValue("campName"), func(c *camp.Camp) error {
		return c.SetFoodStock(vals.Units)
	})
	if err != nil {
		return campErr("Failed to set food stock", err).From("[updateCamp]")
	}
	return nil
}

type PostPayRate struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action PostPayRate) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.postPayRate(req)
	if errHTTP != nil {
		errHTTP.From("[postPayRate]").WriteResponse(w)
		return
	}
	action.es.notifyCampUpdate(req.PathValue("campName"))
	herr.WriteOKResponse(w, "Pay rate updated")
}

func (action PostPayRate) postPayRate(req *http.Request) *herr.HTTPError {
	if _, errHTTP := requirePermissions(req, action.admins, authz.ManageCamps); errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	vals, errHTTP := readBodyAs[campjson.PayRate](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	if vals.PayRate < 0 {
		return herr.BadRequest("Pay rate must be non-negative", nil).SetExpectedError()
	}
	err := updateCamp(action.db, req.PathValue("campName"), func(c *camp.Camp) error {
		c.PayRate = vals.PayRate
		return nil
	})
	if err != nil {
		return campErr("Failed to set pay rate", err).From("[updateCamp]")
	}
	return nil
}

type GetFoodRequirement struct {
	db     *store.Store
	admins []string
}

func (action GetFoodRequirement) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getFoodRequirement(req)
	if errHTTP != nil {
		errHTTP.From("[getFoodRequirement]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetFoodRequirement) getFoodRequirement(req *http.Request) (campjson.FoodRequirement, *herr.HTTPError) {
	var empty campjson.FoodRequirement
	if _, errHTTP := requirePermissions(req, action.admins, authz.ViewReports); errHTTP != nil {
		return empty, errHTTP.From("[requirePermissions]")
	}
	campName := req.PathValue("campName")
	if _, errHTTP := getCamp(action.db.Camps, campName); errHTTP != nil {
		return empty, errHTTP.From("[getCamp]")
	}
	perCamper, ok, err := action.db.FoodRequirements.Get(campName)
	if err != nil {
		return empty, herr.InternalServerError("Failed to read food requirement", err).From("[Get]")
	}
	return campjson.FoodRequirement{Camp: campName, PerCamper: perCamper, Set: ok}, nil
}

type PostFoodRequirement struct {
	db     *store.Store
	admins []string
}

func (action PostFoodRequirement) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	errHTTP := action.postFoodRequirement(req)
	if errHTTP != nil {
		errHTTP.From("[postFoodRequirement]").WriteResponse(w)
		return
	}
	herr.WriteOKResponse(w, "Food requirement set")
}

func (action PostFoodRequirement) postFoodRequirement(req *http.Request) *herr.HTTPError {
	if _, errHTTP := requirePermissions(req, action.admins, authz.SuperviseCamps); errHTTP != nil {
		return errHTTP.From("[requirePermissions]")
	}
	campName := req.PathValue("campName")
	if _, errHTTP := getCamp(action.db.Camps, campName); errHTTP != nil {
		return errHTTP.From("[getCamp]")
	}
	vals, errHTTP := readBodyAs[campjson.FoodRequirement](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	if err := action.db.FoodRequirements.Set(campName, vals.PerCamper); err != nil {
		return herr.BadRequest("Failed to set food requirement", fmt.Errorf("[Set]: %w", err))
	}
	return nil
}
