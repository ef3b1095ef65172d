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

package json

type ShortageReport struct {
	Camp         string `json:"camp"`
	CamperCount  int64  `json:"camper_count"`
	DurationDays int64  `json:"duration_days"`
	Required     int64  `json:"required"`
	Available    int64  `json:"available"`
	Shortage     bool   `json:"shortage"`
}

type EarningsReport struct {
	Camp           string `json:"camp"`
	PayRate        int64  `json:"pay_rate"`
	DurationDays   int    `json:"duration_days"`
	CamperCount    int    `json:"camper_count"`
	Earnings       int64  `json:"earnings"`
	RosterEarnings int64  `json:"roster_earnings"`
}

type EngagementReport struct {
	Camp  string `json:"camp"`
	Score int    `json:"score"`
}

type Dashboard struct {
	Rows          []DashboardRow   `json:"rows"`
	Summary       DashboardSummary `json:"summary"`
	Notifications []string         `json:"notifications"`
}

type DashboardRow struct {
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	CampType     string   `json:"camp_type"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	ScoutLeaders []string `json:"scout_leaders"`
	CamperCount  int      `json:"camper_count"`
	// CamperShare is this camp's share of all enrolled campers, in
	// percent. LeaderCamperRatio is leaders per camper, zero when the
	// roster is empty.
	CamperShare       float64 `json:"camper_share"`
	LeaderCamperRatio float64 `json:"leader_camper_ratio"`
	FoodStock         int64   `json:"food_stock"`
	PayRate           int64   `json:"pay_rate"`
	Shortage          bool    `json:"shortage"`
	Engagement        int     `json:"engagement"`
}

type DashboardSummary struct {
	CampCount         int     `json:"camp_count"`
	CamperCount       int     `json:"camper_count"`
	LeaderCount       int     `json:"leader_count"`
	TotalFoodStock    int64   `json:"total_food_stock"`
	AverageEngagement float64 `json:"average_engagement"`
	ShortageCount     int     `json:"shortage_count"`
}

// ServerStatus is the health endpoint's body, reporting the store's
// backing files and their sizes in human-readable form.
type ServerStatus struct {
	Status    string            `json:"status"`
	DataDir   string            `json:"data_dir"`
	FileSizes map[string]string `json:"file_sizes"`
}
