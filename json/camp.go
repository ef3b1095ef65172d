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

// Package json holds the wire types for the HTTP API. Camp records
// themselves travel in their storage form; the types here cover
// requests and derived responses.
package json

type CampCreate struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	CampType  int    `json:"camp_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	FoodStock int64  `json:"food_stock"`
}

// SupervisionRequest assigns a leader to camps picked by their 1-based
// position in the camp listing. The selection replaces the leader's
// previous supervision set entirely.
type SupervisionRequest struct {
	CampNumbers []int `json:"camp_numbers"`
}

type SupervisionResult struct {
	Leader     string   `json:"leader"`
	Supervised []string `json:"supervised"`
}

type CamperAssignment struct {
	Campers []string `json:"campers"`
}

type CamperAssignmentResult struct {
	Added []string `json:"added"`
}

// CamperImportResult reports a bulk roster import: how many new
// campers landed in the camp, and which rows were skipped because the
// camper is already registered somewhere.
type CamperImportResult struct {
	Added      int      `json:"added"`
	Skipped    []string `json:"skipped,omitzero"`
	RowErrors  []string `json:"row_errors,omitzero"`
	CamperRows int      `json:"camper_rows"`
}

type ActivityLog struct {
	Date     string `json:"date"`
	Activity string `json:"activity"`
	Time     string `json:"time,omitzero"`
	Notes    string `json:"notes,omitzero"`
	FoodUsed int64  `json:"food_used,omitzero"`
}

type DailyRecord struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

// CampEdit replaces a camp's identity and schedule fields wholesale.
// Rosters, activities, and records carry over, and a changed name also
// re-keys the camp's food requirement.
type CampEdit struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	CampType  int    `json:"camp_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	FoodStock int64  `json:"food_stock"`
	PayRate   int64  `json:"pay_rate"`
}

type FoodTopUp struct {
	Units int64 `json:"units"`
}

type FoodStockSet struct {
	Units int64 `json:"units"`
}

type PayRate struct {
	PayRate int64 `json:"pay_rate"`
}

type FoodRequirement struct {
	Camp      string `json:"camp,omitzero"`
	PerCamper int64  `json:"per_camper"`
	Set       bool   `json:"set,omitzero"`
}
