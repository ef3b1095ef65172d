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
	"net/http"

	"github.com/scoutforge/camp-ops-go/camp"
	campjson "github.com/scoutforge/camp-ops-go/json"
	"github.com/scoutforge/camp-ops-go/lib/authz"
	"github.com/scoutforge/camp-ops-go/lib/herr"
	"github.com/scoutforge/camp-ops-go/store"
)

// GetShortage runs the food forecast for one camp. A detected shortage
// appends a notification and publishes a shortage event, so polling this
// endpoint is what keeps the notification list current.
type GetShortage struct {
	db     *store.Store
	es     *EventSourcerer
	admins []string
}

func (action GetShortage) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getShortage(req)
	if errHTTP != nil {
		errHTTP.From("[getShortage]").WriteResponse(w)
		return
	}
	if resp.Shortage {
		action.es.notifyShortage(resp.Camp)
	}
	mustWriteJSON(w, req, resp)
}

func (action GetShortage) getShortage(req *http.Request) (campjson.ShortageReport, *herr.HTTPError) {
	var empty campjson.ShortageReport
	if _, errHTTP := requirePermissions(req, action.admins, authz.ViewReports); errHTTP != nil {
		return empty, errHTTP.From("[requirePermissions]")
	}
	c, errHTTP := getCamp(action.db.Camps, req.PathValue("campName"))
	if errHTTP != nil {
		return empty, errHTTP.From("[getCamp]")
	}
	perCamper, ok, err := action.db.FoodRequirements.Get(c.Name)
	if err != nil {
		return empty, herr.InternalServerError("Failed to read food requirement", err).From("[Get]")
	}
	if !ok {
		// Without a requirement the forecast would read as zero needed,
		// which looks like a well-stocked camp. Refuse instead.
		return empty, herr.BadRequest("No food requirement is set for this camp", nil).SetExpectedError()
	}
	forecast, err := camp.ShortageCheck(c, perCamper, action.db.Notifications)
	if err != nil {
		return empty, campErr("Failed to run shortage check", err).From("[ShortageCheck]")
	}
	return campjson.ShortageReport{
		Camp:         c.Name,
		CamperCount:  int64(forecast.CamperCount),
		DurationDays: int64(forecast.DurationDays),
		Required:     forecast.Required,
		Available:    forecast.Available,
		Shortage:     forecast.Shortage(),
	}, nil
}

type GetEarnings struct {
	db     *store.Store
	admins []string
}

func (action GetEarnings) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getEarnings(req)
	if errHTTP != nil {
		errHTTP.From("[getEarnings]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetEarnings) getEarnings(req *http.Request) (campjson.EarningsReport, *herr.HTTPError) {
	var empty campjson.EarningsReport
	if _, errHTTP := requirePermissions(req, action.admins, authz.ViewReports); errHTTP != nil {
		return empty, errHTTP.From("[requirePermissions]")
	}
	c, errHTTP := getCamp(action.db.Camps, req.PathValue("campName"))
	if errHTTP != nil {
		return empty, errHTTP.From("[getCamp]")
	}
	return campjson.EarningsReport{
		Camp:           c.Name,
		PayRate:        c.PayRate,
		DurationDays:   c.DurationDays(),
		CamperCount:    len(c.Campers),
		Earnings:       camp.Earnings(c),
		RosterEarnings: camp.RosterEarnings(c),
	}, nil
}

type GetEngagement struct {
	db     *store.Store
	admins []string
}

func (action GetEngagement) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getEngagement(req)
	if errHTTP != nil {
		errHTTP.From("[getEngagement]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetEngagement) getEngagement(req *http.Request) (campjson.EngagementReport, *herr.HTTPError) {
	var empty campjson.EngagementReport
	if _, errHTTP := requirePermissions(req, action.admins, authz.ViewReports); errHTTP != nil {
		return empty, errHTTP.From("[requirePermissions]")
	}
	c, errHTTP := getCamp(action.db.Camps, req.PathValue("campName"))
	if errHTTP != nil {
		return empty, errHTTP.From("[getCamp]")
	}
	return campjson.EngagementReport{Camp: c.Name, Score: camp.EngagementScore(c)}, nil
}

// GetDashboard assembles the per-camp overview the UI renders: one row
// per camp with roster share and leader ratio, plus summary totals and
// the pending notification list. Shortage flags here come from the pure
// forecast; they never append notifications.
type GetDashboard struct {
	db     *store.Store
	admins []string
}

func (action GetDashboard) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getDashboard(req)
	if errHTTP != nil {
		errHTTP.From("[getDashboard]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetDashboard) getDashboard(req *http.Request) (campjson.Dashboard, *herr.HTTPError) {
	var empty campjson.Dashboard
	if _, errHTTP := requirePermissions(req, action.admins, authz.ViewReports); errHTTP != nil {
		return empty, errHTTP.From("[requirePermissions]")
	}
	camps, errHTTP := loadCamps(action.db.Camps)
	if errHTTP != nil {
		return empty, errHTTP.From("[loadCamps]")
	}
	requirements, err := action.db.FoodRequirements.All()
	if err != nil {
		return empty, herr.InternalServerError("Failed to read food requirements", err).From("[All]")
	}
	notifications, err := action.db.Notifications.List()
	if err != nil {
		return empty, herr.InternalServerError("Failed to read notifications", err).From("[List]")
	}

	totalCampers := 0
	for _, c := range camps {
		totalCampers += len(c.Campers)
	}

	dash := campjson.Dashboard{
		Rows:          make([]campjson.DashboardRow, 0, len(camps)),
		Notifications: notifications,
	}
	totalEngagement := 0
	for _, c := range camps {
		forecast, err := camp.ForecastRequirement(c, requirements[c.Name])
		if err != nil {
			return empty, campErr("Failed to forecast camp requirement", err).From("[ForecastRequirement]")
		}
		row := campjson.DashboardRow{
			Name:         c.Name,
			Location:     c.Location,
			CampType:     c.Type.String(),
			StartDate:    c.StartDate,
			EndDate:      c.EndDate,
			ScoutLeaders: c.ScoutLeaders,
			CamperCount:  len(c.Campers),
			FoodStock:    c.FoodStock,
			PayRate:      c.PayRate,
			Shortage:     forecast.Shortage(),
			Engagement:   camp.EngagementScore(c),
		}
		if totalCampers > 0 {
			row.CamperShare = 100 * float64(len(c.Campers)) / float64(totalCampers)
		}
		if len(c.Campers) > 0 {
			row.LeaderCamperRatio = float64(len(c.ScoutLeaders)) / float64(len(c.Campers))
		}
		totalEngagement += row.Engagement

		dash.Summary.LeaderCount += len(c.ScoutLeaders)
		dash.Summary.TotalFoodStock += c.FoodStock
		if row.Shortage {
			dash.Summary.ShortageCount++
		}
		dash.Rows = append(dash.Rows, row)
	}
	dash.Summary.CampCount = len(camps)
	dash.Summary.CamperCount = totalCampers
	if len(camps) > 0 {
		dash.Summary.AverageEngagement = float64(totalEngagement) / float64(len(camps))
	}
	return dash, nil
}

type GetNotifications struct {
	db     *store.Store
	admins []string
}

func (action GetNotifications) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getNotifications(req)
	if errHTTP != nil {
		errHTTP.From("[getNotifications]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetNotifications) getNotifications(req *http.Request) ([]string, *herr.HTTPError) {
	if _, errHTTP := requirePermissions(req, action.admins, authz.ViewReports); errHTTP != nil {
		return nil, errHTTP.From("[requirePermissions]")
	}
	notifications, err := action.db.Notifications.List()
	if err != nil {
		return nil, herr.InternalServerError("Failed to read notifications", err).From("[List]")
	}
	if notifications == nil {
		notifications = []string{}
	}
	return notifications, nil
}
