package exporter

import (
	"strconv"

	"homepulse/pkg/contracts/domain"
)

// ObservationHeaders returns the column headers used by both export formats.
func ObservationHeaders() []string {
	return []string{"region", "date", "metric", "value"}
}

// ObservationRecords converts observations to string records. Missing
// values export as empty cells, mirroring how they arrive in the source.
func ObservationRecords(rows []domain.ObservationRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		value := ""
		if !row.Missing {
			value = strconv.FormatFloat(row.Value, 'f', -1, 64)
		}
		records = append(records, []string{
			row.Region,
			row.Date.Format("2006-01-02"),
			row.Metric,
			value,
		})
	}
	return records
}
