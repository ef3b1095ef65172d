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

package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scoutforge/camp-ops-go/api"
	"github.com/scoutforge/camp-ops-go/camp"
	"github.com/scoutforge/camp-ops-go/conf"
	"github.com/scoutforge/camp-ops-go/directory"
	campjson "github.com/scoutforge/camp-ops-go/json"
	"github.com/scoutforge/camp-ops-go/lib/authn"
	"github.com/scoutforge/camp-ops-go/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminUser     = "ada"
	logisticsUser = "lou"
	scoutUser     = "sky"
	testPassword  = "hunter2hunter2"
)

type testServer struct {
	t      *testing.T
	server *httptest.Server
	db     *store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	db, err := store.Open(dir)
	require.NoError(t, err)

	userStore := directory.NewUserStore(db.LoginsPath(), db.DisabledLoginsPath(), 0)
	hash := authn.NewSaltedArgon2idDevOnly(testPassword)
	ctx := t.Context()
	require.NoError(t, userStore.Add(ctx, directory.RoleAdmin, adminUser, hash))
	require.NoError(t, userStore.Add(ctx, directory.RoleLogistics, logisticsUser, hash))
	require.NoError(t, userStore.Add(ctx, directory.RoleScoutLeader, scoutUser, hash))

	cfg := conf.DefaultCampOps()
	cfg.Store.DataDir = dir

	mux := api.AddToMux(nil, api.NewEventSourcerer(), cfg, db, userStore)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &testServer{t: t, server: server, db: db}
}

func (ts *testServer) login(username, password string) (token string, resp *http.Response) {
	ts.t.Helper()
	body, err := json.Marshal(api.PostAuthRequest{Identification: username, Password: password})
	require.NoError(ts.t, err)
	resp, err = http.Post(ts.server.URL+"/camp-ops/api/auth", "application/json", bytes.NewReader(body))
	require.NoError(ts.t, err)
	if resp.StatusCode != http.StatusOK {
		return "", resp
	}
	var authResp api.PostAuthResponse
	mustDecode(ts.t, resp, &authResp)
	return authResp.Token, resp
}

func (ts *testServer) mustLogin(username string) string {
	ts.t.Helper()
	token, resp := ts.login(username, testPassword)
	require.Equal(ts.t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(ts.t, token)
	return token
}

func (ts *testServer) do(method, path, token string, body any) *http.Response {
	ts.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		marshalled, err := json.Marshal(b)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(marshalled)
	}
	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	require.NoError(ts.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(ts.t, err)
	return resp
}

func mustDecode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer func() { require.NoError(t, resp.Body.Close()) }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func newCamp(name string, campType int, start, end string, foodStock int64) campjson.CampCreate {
	return campjson.CampCreate{
		Name:      name,
		Location:  "Testing Grounds",
		CampType:  campType,
		StartDate: start,
		EndDate:   end,
		FoodStock: foodStock,
	}
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	// Bad credentials and unauthenticated API calls are rejected.
	_, resp := ts.login(adminUser, "wrong password")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = ts.do(http.MethodGet, "/camp-ops/api/camps", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Login is case-insensitive on the username.
	token, resp := ts.login("ADA", testPassword)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/camp-ops/api/auth", token, nil)
	var who api.GetAuthResponse
	mustDecode(t, resp, &who)
	assert.True(t, who.Authenticated)
	assert.Equal(t, adminUser, who.User)
	assert.Equal(t, string(directory.RoleAdmin), who.Role)
	assert.True(t, who.Admin)

	// Same endpoint, no token: authenticated=false rather than an error.
	resp = ts.do(http.MethodGet, "/camp-ops/api/auth", "", nil)
	who = api.GetAuthResponse{}
	mustDecode(t, resp, &who)
	assert.False(t, who.Authenticated)
}

func TestRefreshAccessToken(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	body, err := json.Marshal(api.PostAuthRequest{Identification: scoutUser, Password: testPassword})
	require.NoError(t, err)
	resp, err := http.Post(ts.server.URL+"/camp-ops/api/auth", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	var refreshCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "camp_ops_refresh_token" {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie)

	req, err := http.NewRequest(http.MethodPost, ts.server.URL+"/camp-ops/api/auth/refresh", nil)
	require.NoError(t, err)
	req.AddCookie(refreshCookie)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var refreshed api.RefreshAccessTokenResponse
	mustDecode(t, resp, &refreshed)
	require.NotEmpty(t, refreshed.Token)

	// No cookie: no refresh.
	resp = ts.do(http.MethodPost, "/camp-ops/api/auth/refresh", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCampLifecycle(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	logistics := ts.mustLogin(logisticsUser)
	scout := ts.mustLogin(scoutUser)

	// Only logistics coordinators may create camps.
	create := newCamp("Pine Ridge", 2, "2025-07-01", "2025-07-02", 40)
	resp := ts.do(http.MethodPost, "/camp-ops/api/camps", scout, create)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/camp-ops/api/camps", logistics, create)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Camp names are unique.
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps", logistics, create)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A multi-day camp needs at least two nights.
	tooShort := newCamp("Short Stay", 3, "2025-07-01", "2025-07-02", 10)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps", logistics, tooShort)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/camp-ops/api/camps", scout, nil)
	var listed []json.RawMessage
	mustDecode(t, resp, &listed)
	require.Len(t, listed, 1)

	resp = ts.do(http.MethodGet, "/camp-ops/api/camps/Pine%20Ridge", scout, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodGet, "/camp-ops/api/camps/Nowhere", scout, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(http.MethodDelete, "/camp-ops/api/camps/Pine%20Ridge", logistics, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = ts.do(http.MethodGet, "/camp-ops/api/camps", scout, nil)
	listed = nil
	mustDecode(t, resp, &listed)
	require.Empty(t, listed)
}

func TestCampEdit(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	logistics := ts.mustLogin(logisticsUser)
	scout := ts.mustLogin(scoutUser)

	resp := ts.do(http.MethodPost, "/camp-ops/api/camps", logistics,
		newCamp("Pine Ridge", 2, "2025-07-01", "2025-07-02", 40))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps", logistics,
		newCamp("Owl Hollow", 1, "2025-08-01", "2025-08-01", 10))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Pine%20Ridge/campers", scout,
		campjson.CamperAssignment{Campers: []string{"Sam", "Alex"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Pine%20Ridge/food_requirement", scout,
		campjson.FoodRequirement{PerCamper: 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	edit := campjson.CampEdit{
		Name:      "Cedar Ridge",
		Location:  "Upper Valley",
		CampType:  2,
		StartDate: "2025-07-08",
		EndDate:   "2025-07-09",
		FoodStock: 60,
		PayRate:   90,
	}

	// Editing is a logistics concern, and the target must exist.
	resp = ts.do(http.MethodPut, "/camp-ops/api/camps/Pine%20Ridge", scout, edit)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = ts.do(http.MethodPut, "/camp-ops/api/camps/Nowhere", logistics, edit)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Renaming onto an existing camp is rejected.
	taken := edit
	taken.Name = "Owl Hollow"
	resp = ts.do(http.MethodPut, "/camp-ops/api/camps/Pine%20Ridge", logistics, taken)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Schedule fields revalidate: an overnight camp can't span one day.
	badDates := edit
	badDates.EndDate = badDates.StartDate
	resp = ts.do(http.MethodPut, "/camp-ops/api/camps/Pine%20Ridge", logistics, badDates)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(http.MethodPut, "/camp-ops/api/camps/Pine%20Ridge", logistics, edit)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The roster survives the rename, and the food requirement follows
	// the camp to its new name.
	camps, _, err := ts.db.Camps.Load()
	require.NoError(t, err)
	require.Len(t, camps, 2)
	var renamed bool
	for _, c := range camps {
		if c.Name == "Cedar Ridge" {
			renamed = true
			assert.Equal(t, "Upper Valley", c.Location)
			assert.Equal(t, int64(60), c.FoodStock)
			assert.Equal(t, int64(90), c.PayRate)
			assert.Equal(t, []string{"Sam", "Alex"}, c.Campers)
		}
		assert.NotEqual(t, "Pine Ridge", c.Name)
	}
	require.True(t, renamed)
	resp = ts.do(http.MethodGet, "/camp-ops/api/camps/Cedar%20Ridge/food_requirement", scout, nil)
	var req campjson.FoodRequirement
	mustDecode(t, resp, &req)
	assert.True(t, req.Set)
	assert.Equal(t, int64(3), req.PerCamper)

	// Absolute stock set, as opposed to the incremental top-up.
	resp = ts.do(http.MethodPut, "/camp-ops/api/camps/Cedar%20Ridge/food", logistics,
		campjson.FoodStockSet{Units: 12})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodPut, "/camp-ops/api/camps/Cedar%20Ridge/food", logistics,
		campjson.FoodStockSet{Units: -3})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var fetched camp.Camp
	resp = ts.do(http.MethodGet, "/camp-ops/api/camps/Cedar%20Ridge", scout, nil)
	mustDecode(t, resp, &fetched)
	assert.Equal(t, int64(12), fetched.FoodStock)
}

func TestSupervisionAssignment(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	logistics := ts.mustLogin(logisticsUser)
	scout := ts.mustLogin(scoutUser)

	for _, c := range []campjson.CampCreate{
		newCamp("Alpha", 2, "2025-07-01", "2025-07-02", 20),
		newCamp("Bravo", 2, "2025-07-02", "2025-07-03", 20),
		newCamp("Charlie", 1, "2025-08-01", "2025-08-01", 20),
	} {
		resp := ts.do(http.MethodPost, "/camp-ops/api/camps", logistics, c)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Alpha and Bravo share a boundary date, so selecting both is a
	// scheduling conflict and nothing is assigned.
	resp := ts.do(http.MethodPost, "/camp-ops/api/supervision", scout,
		campjson.SupervisionRequest{CampNumbers: []int{1, 2}})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// An out-of-range index rejects the whole selection.
	resp = ts.do(http.MethodPost, "/camp-ops/api/supervision", scout,
		campjson.SupervisionRequest{CampNumbers: []int{1, 9}})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/camp-ops/api/supervision", scout,
		campjson.SupervisionRequest{CampNumbers: []int{1, 3}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result campjson.SupervisionResult
	mustDecode(t, resp, &result)
	assert.Equal(t, scoutUser, result.Leader)
	assert.ElementsMatch(t, []string{"Alpha", "Charlie"}, result.Supervised)

	// A new selection replaces the previous one in full.
	resp = ts.do(http.MethodPost, "/camp-ops/api/supervision", scout,
		campjson.SupervisionRequest{CampNumbers: []int{2}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	camps, _, err := ts.db.Camps.Load()
	require.NoError(t, err)
	supervising := map[string]bool{}
	for _, c := range camps {
		for _, leader := range c.ScoutLeaders {
			if leader == scoutUser {
				supervising[c.Name] = true
			}
		}
	}
	assert.Equal(t, map[string]bool{"Bravo": true}, supervising)
}

func TestCampersActivitiesAndReports(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	logistics := ts.mustLogin(logisticsUser)
	scout := ts.mustLogin(scoutUser)

	resp := ts.do(http.MethodPost, "/camp-ops/api/camps", logistics,
		newCamp("Pine Ridge", 2, "2025-07-01", "2025-07-02", 4))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Assigning campers is idempotent per name.
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Pine%20Ridge/campers", scout,
		campjson.CamperAssignment{Campers: []string{"Sam", "Alex", "Sam"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var assigned campjson.CamperAssignmentResult
	mustDecode(t, resp, &assigned)
	assert.Equal(t, []string{"Sam", "Alex"}, assigned.Added)

	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Pine%20Ridge/activities", scout,
		campjson.ActivityLog{Date: "2025-07-01", Activity: "canoeing", Time: "morning", Notes: "calm water", FoodUsed: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Pine%20Ridge/daily_records", scout,
		campjson.DailyRecord{Date: "2025-07-01", Notes: "all tents up"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// One activity entry, its mirrored note, and one daily record.
	resp = ts.do(http.MethodGet, "/camp-ops/api/camps/Pine%20Ridge/engagement", scout, nil)
	var engagement campjson.EngagementReport
	mustDecode(t, resp, &engagement)
	assert.Equal(t, 3, engagement.Score)

	// A shortage check without a requirement set is refused, not
	// reported as sufficient.
	resp = ts.do(http.MethodGet, "/camp-ops/api/camps/Pine%20Ridge/shortage", scout, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Two campers at 3 units/day over 2 days against 4 units/day stock.
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Pine%20Ridge/food_requirement", scout,
		campjson.FoodRequirement{PerCamper: 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/camp-ops/api/camps/Pine%20Ridge/shortage", scout, nil)
	var shortage campjson.ShortageReport
	mustDecode(t, resp, &shortage)
	assert.True(t, shortage.Shortage)
	assert.Equal(t, int64(12), shortage.Required)
	assert.Equal(t, int64(8), shortage.Available)

	// The shortage check appends a notification.
	resp = ts.do(http.MethodGet, "/camp-ops/api/notifications", scout, nil)
	var notifications []string
	mustDecode(t, resp, &notifications)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0], "Food shortage at Pine Ridge")

	// Logistics tops up food; the shortage clears.
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Pine%20Ridge/food", logistics,
		campjson.FoodTopUp{Units: 10})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodGet, "/camp-ops/api/camps/Pine%20Ridge/shortage", scout, nil)
	shortage = campjson.ShortageReport{}
	mustDecode(t, resp, &shortage)
	assert.False(t, shortage.Shortage)

	// Negative top-ups are rejected.
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Pine%20Ridge/food", logistics,
		campjson.FoodTopUp{Units: -5})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPayRateAndEarnings(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	logistics := ts.mustLogin(logisticsUser)
	scout := ts.mustLogin(scoutUser)

	resp := ts.do(http.MethodPost, "/camp-ops/api/camps", logistics,
		newCamp("Summit", 3, "2025-07-01", "2025-07-04", 30))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Summit/campers", scout,
		campjson.CamperAssignment{Campers: []string{"Sam", "Alex", "Kit"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Pay rates are a logistics concern.
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Summit/pay_rate", scout,
		campjson.PayRate{PayRate: 100})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Summit/pay_rate", logistics,
		campjson.PayRate{PayRate: -1})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Summit/pay_rate", logistics,
		campjson.PayRate{PayRate: 100})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/camp-ops/api/camps/Summit/earnings", scout, nil)
	var earnings campjson.EarningsReport
	mustDecode(t, resp, &earnings)
	assert.Equal(t, 4, earnings.DurationDays)
	assert.Equal(t, int64(400), earnings.Earnings)
	assert.Equal(t, int64(300), earnings.RosterEarnings)
}

func TestRosterImport(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	logistics := ts.mustLogin(logisticsUser)
	scout := ts.mustLogin(scoutUser)

	for _, c := range []campjson.CampCreate{
		newCamp("Here", 1, "2025-07-01", "2025-07-01", 10),
		newCamp("There", 1, "2025-08-01", "2025-08-01", 10),
	} {
		resp := ts.do(http.MethodPost, "/camp-ops/api/camps", logistics, c)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp := ts.do(http.MethodPost, "/camp-ops/api/camps/There/campers", scout,
		campjson.CamperAssignment{Campers: []string{"Alex"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	roster := "Name,Age,Activities\n" +
		"Sam,11,archery;swimming\n" +
		"Alex,12,hiking\n" +
		",13,\n" +
		"Kit,10,crafts\n"
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Here/campers/import", scout, roster)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result campjson.CamperImportResult
	mustDecode(t, resp, &result)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 3, result.CamperRows)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "Alex is already enrolled in There", result.Skipped[0])
	require.Len(t, result.RowErrors, 1)
	assert.Contains(t, result.RowErrors[0], "blank camper name")
}

func TestDashboard(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	logistics := ts.mustLogin(logisticsUser)
	scout := ts.mustLogin(scoutUser)

	resp := ts.do(http.MethodPost, "/camp-ops/api/camps", logistics,
		newCamp("Big", 1, "2025-07-01", "2025-07-01", 50))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps", logistics,
		newCamp("Small", 1, "2025-08-01", "2025-08-01", 5))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Big/campers", scout,
		campjson.CamperAssignment{Campers: []string{"Sam", "Alex", "Kit"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/camps/Small/campers", scout,
		campjson.CamperAssignment{Campers: []string{"Robin"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/camp-ops/api/dashboard", scout, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash campjson.Dashboard
	mustDecode(t, resp, &dash)

	require.Len(t, dash.Rows, 2)
	assert.Equal(t, "Big", dash.Rows[0].Name)
	assert.InDelta(t, 75.0, dash.Rows[0].CamperShare, 0.001)
	assert.InDelta(t, 25.0, dash.Rows[1].CamperShare, 0.001)
	assert.Equal(t, 2, dash.Summary.CampCount)
	assert.Equal(t, 4, dash.Summary.CamperCount)
	assert.Equal(t, int64(55), dash.Summary.TotalFoodStock)
}

func TestPersonnelManagement(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	admin := ts.mustLogin(adminUser)
	scout := ts.mustLogin(scoutUser)

	// Only admins manage users.
	resp := ts.do(http.MethodGet, "/camp-ops/api/personnel", scout, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/camp-ops/api/personnel", admin,
		campjson.PersonCreate{Username: "newbie", Role: string(directory.RoleScoutLeader), Password: "s3cret-enough"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/personnel", admin,
		campjson.PersonCreate{Username: "newbie", Role: string(directory.RoleScoutLeader), Password: "s3cret-enough"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/personnel", admin,
		campjson.PersonCreate{Username: "badrole", Role: "janitor", Password: "s3cret-enough"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/camp-ops/api/personnel", admin, nil)
	var people []campjson.Person
	mustDecode(t, resp, &people)
	require.Len(t, people, 4)

	// The new user can log in until disabled.
	_, resp = ts.login("newbie", "s3cret-enough")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/personnel/newbie/disabled", admin,
		campjson.DisabledFlag{Disabled: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, resp = ts.login("newbie", "s3cret-enough")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/personnel/newbie/disabled", admin,
		campjson.DisabledFlag{Disabled: false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Password reset takes effect immediately.
	resp = ts.do(http.MethodPost, "/camp-ops/api/personnel/newbie/password", admin,
		campjson.PasswordReset{Password: "a-different-one"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, resp = ts.login("newbie", "s3cret-enough")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_, resp = ts.login("newbie", "a-different-one")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Admins can't delete or disable themselves.
	resp = ts.do(http.MethodDelete, "/camp-ops/api/personnel/"+adminUser, admin, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/personnel/"+adminUser+"/disabled", admin,
		campjson.DisabledFlag{Disabled: true})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(http.MethodDelete, "/camp-ops/api/personnel/newbie", admin, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = ts.do(http.MethodDelete, "/camp-ops/api/personnel/newbie", admin, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMessaging(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	logistics := ts.mustLogin(logisticsUser)
	scout := ts.mustLogin(scoutUser)

	resp := ts.do(http.MethodPost, "/camp-ops/api/messages", scout,
		campjson.MessageSend{To: "nobody", Text: "hello?"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/messages", scout,
		campjson.MessageSend{To: scoutUser, Text: "dear me"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/camp-ops/api/messages", scout,
		campjson.MessageSend{To: logisticsUser, Text: "need more rope"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/camp-ops/api/messages", logistics,
		campjson.MessageSend{To: scoutUser, Text: "on its way"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/camp-ops/api/messages/partners", scout, nil)
	var partners []campjson.MessagePartner
	mustDecode(t, resp, &partners)
	require.Len(t, partners, 1)
	assert.Equal(t, logisticsUser, partners[0].Username)
	assert.Equal(t, 1, partners[0].UnreadCount)

	// Fetching the conversation marks it read.
	resp = ts.do(http.MethodGet, fmt.Sprintf("/camp-ops/api/messages?partner=%v", logisticsUser), scout, nil)
	var thread []store.Message
	mustDecode(t, resp, &thread)
	require.Len(t, thread, 2)
	assert.Equal(t, "need more rope", thread[0].Text)
	assert.Equal(t, "on its way", thread[1].Text)

	resp = ts.do(http.MethodGet, "/camp-ops/api/messages/partners", scout, nil)
	partners = nil
	mustDecode(t, resp, &partners)
	require.Len(t, partners, 1)
	assert.Equal(t, 0, partners[0].UnreadCount)
}

func TestPingAndStatus(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, err := http.Get(ts.server.URL + "/camp-ops/api/ping")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ack")

	// Status needs a valid token.
	resp = ts.do(http.MethodGet, "/camp-ops/api/status", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := ts.mustLogin(adminUser)
	resp = ts.do(http.MethodGet, "/camp-ops/api/status", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status campjson.ServerStatus
	mustDecode(t, resp, &status)
	assert.Equal(t, "ok", status.Status)
	assert.NotEmpty(t, status.FileSizes)
}
