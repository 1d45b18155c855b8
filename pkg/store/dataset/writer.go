package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const exportDateLayout = "2006-01-02"

// ExportHeader is the header row of a per-user activity export.
var ExportHeader = []string{ColumnDate, ColumnCategory, ColumnCO2e}

// WriteCSV writes one row per record under ExportHeader.
func WriteCSV(w io.Writer, records []domain.EmissionRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.Date.Format(exportDateLayout),
			record.Category,
			strconv.FormatFloat(record.CO2e, 'g', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the same table as WriteCSV into a single-sheet workbook.
func WriteXLSX(w io.Writer, records []domain.EmissionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, len(ExportHeader))
	for i, name := range ExportHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{record.Date.Format(exportDateLayout), record.Category, record.CO2e}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
