package dataprocessing

import (
	"sort"
	"time"

	"homepulse/pkg/contracts/domain"
)

// Regions returns the sorted distinct region names in the observations.
func Regions(rows []domain.ObservationRow) []string {
	seen := make(map[string]struct{}, len(rows))
	var regions []string
	for _, row := range rows {
		if _, ok := seen[row.Region]; !ok {
			seen[row.Region] = struct{}{}
			regions = append(regions, row.Region)
		}
	}
	sort.Strings(regions)
	return regions
}

// LatestSnapshot returns each region's value at the newest date carried by
// the observations, sorted by region name. Missing-value observations are
// excluded from both the date search and the snapshot itself. The
// YoYChange field is populated when the region has a comparison point at
// or before one year prior.
func LatestSnapshot(rows []domain.ObservationRow) []SnapshotEntry {
	var latest time.Time
	for _, row := range rows {
		if row.Missing {
			continue
		}
		if row.Date.After(latest) {
			latest = row.Date
		}
	}
	if latest.IsZero() {
		return nil
	}

	oneYearAgo := latest.AddDate(-1, 0, 0)

	var entries []SnapshotEntry
	for _, row := range rows {
		if row.Missing || !row.Date.Equal(latest) {
			continue
		}

		entry := SnapshotEntry{Region: row.Region, Date: row.Date, Value: row.Value}

		if prev, ok := observationAtOrBefore(rows, row.Region, oneYearAgo); ok && prev.Value != 0 {
			change := (row.Value - prev.Value) / prev.Value * 100
			entry.YoYChange = &change
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Region < entries[j].Region })
	return entries
}

// YoYChange computes the year-over-year percent change series for each
// region in the observations. Each non-missing observation with a
// comparison point at or before one year prior yields one point; output
// preserves the input observation order.
func YoYChange(rows []domain.ObservationRow) []YoYPoint {
	var points []YoYPoint
	for _, row := range rows {
		if row.Missing {
			continue
		}

		prev, ok := observationAtOrBefore(rows, row.Region, row.Date.AddDate(-1, 0, 0))
		if !ok || prev.Value == 0 {
			continue
		}

		points = append(points, YoYPoint{
			Region:    row.Region,
			Date:      row.Date,
			ChangePct: (row.Value - prev.Value) / prev.Value * 100,
		})
	}
	return points
}

// observationAtOrBefore finds the region's newest non-missing observation
// dated at or before cutoff.
func observationAtOrBefore(rows []domain.ObservationRow, region string, cutoff time.Time) (domain.ObservationRow, bool) {
	var best domain.ObservationRow
	found := false
	for _, row := range rows {
		if row.Missing || row.Region != region || row.Date.After(cutoff) {
			continue
		}
		if !found || row.Date.After(best.Date) {
			best = row
			found = true
		}
	}
	return best, found
}
