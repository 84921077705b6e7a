package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"homepulse/pkg/contracts/domain"
)

// ObservationsSheet is the worksheet name used for Excel exports.
const ObservationsSheet = "Observations"

// WriteObservationsXLSX streams a filtered observation subset as an Excel
// workbook with a single worksheet. Missing values export as empty cells.
func WriteObservationsXLSX(w io.Writer, rows []domain.ObservationRow) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), ObservationsSheet)

	for col, header := range ObservationHeaders() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(ObservationsSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.Region,
			row.Date.Format("2006-01-02"),
			row.Metric,
		}
		if row.Missing {
			values = append(values, "")
		} else {
			values = append(values, row.Value)
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(ObservationsSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
