package domain

import (
	"time"
)

// MetricMedianHomeValue is the metric name carried by ZHVI observations.
// ZHVI is the Zillow Home Value Index, a median-home-value time series.
const MetricMedianHomeValue = "median_home_value"

// ObservationRow is a single normalized observation: one region's metric
// value at one date. After normalization (region, date, metric) uniquely
// identifies a row. Missing marks cells that were blank or non-numeric in
// the source; Value is zero and must be ignored for such rows.
type ObservationRow struct {
	Region  string    `json:"region"`
	Date    time.Time `json:"date"`
	Metric  string    `json:"metric"`
	Value   float64   `json:"value"`
	Missing bool      `json:"missing,omitempty"`
}

// RawDataset describes a source file downloaded by the fetcher. The file
// at LocalPath is immutable once written and is overwritten wholesale on
// the next fetch.
type RawDataset struct {
	Name      string    `json:"name"`
	SourceURL string    `json:"source_url"`
	LocalPath string    `json:"local_path"`
	FetchedAt time.Time `json:"fetched_at"`
}

// NormalizedTable is the ordered collection of observations produced by a
// single load. It is rebuilt from the raw file on every load and is
// read-only to downstream consumers; filtering never mutates it.
type NormalizedTable struct {
	Source   RawDataset       `json:"source"`
	Rows     []ObservationRow `json:"rows"`
	LoadedAt time.Time        `json:"loaded_at"`
}

// Len returns the number of observations in the table.
func (t *NormalizedTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// FilterCriteria selects a subset of a normalized table. An empty Regions
// slice means all regions; zero From/To mean an unbounded range on that
// side; an empty Metric means all metrics. Criteria are transient and
// constructed per request.
type FilterCriteria struct {
	Regions []string  `json:"regions,omitempty"`
	From    time.Time `json:"from,omitempty"`
	To      time.Time `json:"to,omitempty"`
	Metric  string    `json:"metric,omitempty"`
}

// Matches reports whether a single observation satisfies the criteria.
// Date bounds are inclusive on both ends.
func (c FilterCriteria) Matches(row ObservationRow) bool {
	if len(c.Regions) > 0 {
		found := false
		for _, region := range c.Regions {
			if region == row.Region {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !c.From.IsZero() && row.Date.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && row.Date.After(c.To) {
		return false
	}
	if c.Metric != "" && c.Metric != row.Metric {
		return false
	}
	return true
}
