package models

// SRSStage describes how long an item waits at one stage before its next
// review. A nil Interval marks a terminal stage.
type SRSStage struct {
	Interval     *int64 `json:"interval"`
	IntervalUnit string `json:"interval_unit"`
}

type SRSSystem struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Stages []SRSStage `json:"stages"`
}
