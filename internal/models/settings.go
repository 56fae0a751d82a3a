package models

type Settings struct {
	// OverdueThreshold is a percentage of the stage interval, 1-100.
	OverdueThreshold int    `json:"overdue_threshold"`
	NearMatchPolicy  string `json:"near_match_policy"`
}
