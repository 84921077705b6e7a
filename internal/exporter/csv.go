package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"homepulse/pkg/contracts/domain"
)

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV streams CSV data to w with the given options.
func WriteCSV(w io.Writer, options WriteOptions) error {
	// BOM helps Excel recognize UTF-8.
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteObservationsCSV streams a filtered observation subset as CSV.
func WriteObservationsCSV(w io.Writer, rows []domain.ObservationRow) error {
	return WriteCSV(w, WriteOptions{
		Headers:   ObservationHeaders(),
		Records:   ObservationRecords(rows),
		BOMPrefix: true,
	})
}
