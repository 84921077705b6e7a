package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepulse/pkg/contracts/domain"
)

func obs(region, date string, value float64) domain.ObservationRow {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return domain.ObservationRow{
		Region: region,
		Date:   d,
		Metric: domain.MetricMedianHomeValue,
		Value:  value,
	}
}

func missingObs(region, date string) domain.ObservationRow {
	row := obs(region, date, 0)
	row.Missing = true
	return row
}

func TestRegionsSortedDistinct(t *testing.T) {
	rows := []domain.ObservationRow{
		obs("Texas", "2020-01-31", 1),
		obs("California", "2020-01-31", 2),
		obs("Texas", "2020-02-29", 3),
		obs("Maine", "2020-01-31", 4),
	}

	assert.Equal(t, []string{"California", "Maine", "Texas"}, Regions(rows))
}

func TestRegionsEmpty(t *testing.T) {
	assert.Empty(t, Regions(nil))
}

func TestLatestSnapshot(t *testing.T) {
	rows := []domain.ObservationRow{
		obs("California", "2019-03-31", 480000),
		obs("California", "2020-03-31", 500000),
		obs("Texas", "2019-03-31", 290000),
		obs("Texas", "2020-03-31", 300000),
	}

	entries := LatestSnapshot(rows)
	require.Len(t, entries, 2)

	assert.Equal(t, "California", entries[0].Region)
	assert.Equal(t, 500000.0, entries[0].Value)
	require.NotNil(t, entries[0].YoYChange)
	assert.InDelta(t, (500000.0-480000.0)/480000.0*100, *entries[0].YoYChange, 1e-9)

	assert.Equal(t, "Texas", entries[1].Region)
	assert.Equal(t, 300000.0, entries[1].Value)
}

func TestLatestSnapshotNoComparisonPoint(t *testing.T) {
	rows := []domain.ObservationRow{
		obs("Texas", "2020-02-29", 295000),
		obs("Texas", "2020-03-31", 300000),
	}

	entries := LatestSnapshot(rows)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].YoYChange)
}

func TestLatestSnapshotIgnoresMissing(t *testing.T) {
	rows := []domain.ObservationRow{
		obs("Texas", "2020-02-29", 295000),
		missingObs("Texas", "2020-03-31"),
	}

	// The missing March observation does not advance the latest date.
	entries := LatestSnapshot(rows)
	require.Len(t, entries, 1)
	assert.Equal(t, 295000.0, entries[0].Value)
}

func TestLatestSnapshotAllMissing(t *testing.T) {
	assert.Nil(t, LatestSnapshot([]domain.ObservationRow{missingObs("Texas", "2020-03-31")}))
}

func TestYoYChange(t *testing.T) {
	rows := []domain.ObservationRow{
		obs("Maine", "2019-06-30", 200000),
		obs("Maine", "2020-06-30", 210000),
		obs("Maine", "2021-06-30", 231000),
	}

	points := YoYChange(rows)
	require.Len(t, points, 2)

	assert.Equal(t, "Maine", points[0].Region)
	assert.InDelta(t, 5.0, points[0].ChangePct, 1e-9)
	assert.InDelta(t, 10.0, points[1].ChangePct, 1e-9)
}

func TestYoYChangeUsesClosestPriorObservation(t *testing.T) {
	// No observation exactly one year before 2020-07-31; the June 2019
	// point is the closest at or before the cutoff.
	rows := []domain.ObservationRow{
		obs("Maine", "2019-06-30", 200000),
		obs("Maine", "2020-07-31", 220000),
	}

	points := YoYChange(rows)
	require.Len(t, points, 1)
	assert.InDelta(t, 10.0, points[0].ChangePct, 1e-9)
}

func TestYoYChangeSkipsMissingAndZero(t *testing.T) {
	rows := []domain.ObservationRow{
		obs("Maine", "2019-06-30", 0),
		missingObs("Maine", "2019-07-31"),
		obs("Maine", "2020-06-30", 210000),
	}

	// A zero prior value cannot produce a percent change and the missing
	// observation is not a comparison point.
	assert.Empty(t, YoYChange(rows))
}
