package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"homepulse/internal/config"
	"homepulse/pkg/contracts/domain"
)

// SchemaError reports a malformed input file: a missing header row, a
// missing region column, or zero date columns. The load is all-or-nothing;
// a SchemaError means no table was produced.
type SchemaError struct {
	Path   string
	Reason string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid schema in %s: %s", e.Path, e.Reason)
}

// LoadZHVIFile reads the raw wide-format CSV at path and melts it into a
// normalized table. Every data row emits one observation per date column;
// blank or non-numeric cells become observations with the missing marker;
// rows with a blank region identifier are dropped entirely. Region names
// pass through verbatim.
func LoadZHVIFile(path string) (*domain.NormalizedTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset: %w", err)
	}

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, &SchemaError{Path: path, Reason: "missing header row"}
	}

	header := records[0]

	// Locate the region column and the ordered date columns.
	regionIdx := -1
	type dateColumn struct {
		index int
		date  time.Time
	}
	var dateColumns []dateColumn

	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == config.RegionColumn {
			regionIdx = i
			continue
		}
		if date, err := time.Parse(config.DateColumnLayout, name); err == nil {
			dateColumns = append(dateColumns, dateColumn{index: i, date: date})
		}
	}

	if regionIdx == -1 {
		return nil, &SchemaError{Path: path, Reason: fmt.Sprintf("missing %s column", config.RegionColumn)}
	}
	if len(dateColumns) == 0 {
		return nil, &SchemaError{Path: path, Reason: "no date columns found"}
	}

	rows := make([]domain.ObservationRow, 0, (len(records)-1)*len(dateColumns))
	dropped := 0

	for _, record := range records[1:] {
		region := strings.TrimSpace(record[regionIdx])
		if region == "" {
			dropped++
			continue
		}

		for _, col := range dateColumns {
			row := domain.ObservationRow{
				Region: region,
				Date:   col.date,
				Metric: domain.MetricMedianHomeValue,
			}

			cell := strings.TrimSpace(record[col.index])
			if cell == "" {
				row.Missing = true
			} else if value, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err == nil {
				row.Value = value
			} else {
				row.Missing = true
			}

			rows = append(rows, row)
		}
	}

	slog.Info("dataset normalized",
		slog.String("path", path),
		slog.Int("source_rows", len(records)-1),
		slog.Int("date_columns", len(dateColumns)),
		slog.Int("observations", len(rows)),
		slog.Int("dropped_rows", dropped))

	return &domain.NormalizedTable{
		Source: domain.RawDataset{
			Name:      config.ZHVIResourceName,
			LocalPath: path,
			FetchedAt: info.ModTime().UTC(),
		},
		Rows:     rows,
		LoadedAt: time.Now().UTC(),
	}, nil
}

// Filter returns the subset of table rows matching the criteria, in the
// table's row order. The input table is never mutated; an empty result is
// a valid outcome.
func Filter(table *domain.NormalizedTable, criteria domain.FilterCriteria) []domain.ObservationRow {
	if table == nil {
		return nil
	}

	filtered := make([]domain.ObservationRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		if criteria.Matches(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
