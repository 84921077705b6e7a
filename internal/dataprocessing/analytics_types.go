package dataprocessing

import "time"

// SnapshotEntry is one region's value at the newest date present in a
// filtered set of observations, with the year-over-year change when a
// comparison point exists.
type SnapshotEntry struct {
	Region    string    `json:"region"`
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	YoYChange *float64  `json:"yoy_change,omitempty"`
}

// YoYPoint is one region's year-over-year percent change at a date.
// Observations with no comparison point a year earlier produce no point.
type YoYPoint struct {
	Region    string    `json:"region"`
	Date      time.Time `json:"date"`
	ChangePct float64   `json:"change_pct"`
}
