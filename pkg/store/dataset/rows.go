package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/de-tools/carbon-atlas/pkg/models/store"
	"github.com/xuri/excelize/v2"
)

const (
	ColumnUserID   = "UserID"
	ColumnDate     = "Date"
	ColumnCategory = "Category"
	ColumnCO2e     = "CO2e (kg)"
)

var headerAliases = map[string]string{
	"userid":   ColumnUserID,
	"user":     ColumnUserID,
	"date":     ColumnDate,
	"category": ColumnCategory,
	"co2ekg":   ColumnCO2e,
	"co2e":     ColumnCO2e,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
}

type columns struct {
	user, date, category, co2e int
}

// ParseTable converts a header row followed by data rows into emission rows.
// Columns are located by header name, blank rows are skipped and any other
// malformed row fails the whole table.
func ParseTable(table [][]string) ([]store.EmissionRow, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("empty table: header row is missing")
	}

	cols, err := locateColumns(table[0])
	if err != nil {
		return nil, err
	}

	rows := make([]store.EmissionRow, 0, len(table)-1)
	for i, raw := range table[1:] {
		rowNum := i + 2 // 1-based, after the header
		if isBlank(raw) {
			continue
		}

		date, err := ParseDate(cell(raw, cols.date))
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", rowNum, ColumnDate, err)
		}
		co2e, err := parseCO2e(cell(raw, cols.co2e))
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", rowNum, ColumnCO2e, err)
		}

		rows = append(rows, store.EmissionRow{
			Row:      rowNum,
			UserID:   cell(raw, cols.user),
			Date:     date,
			Category: strings.TrimSpace(cell(raw, cols.category)),
			CO2e:     co2e,
		})
	}

	return rows, nil
}

func locateColumns(header []string) (columns, error) {
	found := map[string]int{}
	for i, name := range header {
		canonical, ok := headerAliases[normalizeHeader(name)]
		if !ok {
			continue
		}
		if _, dup := found[canonical]; !dup {
			found[canonical] = i
		}
	}

	var missing []string
	for _, name := range []string{ColumnUserID, ColumnDate, ColumnCategory, ColumnCO2e} {
		if _, ok := found[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns{
		user:     found[ColumnUserID],
		date:     found[ColumnDate],
		category: found[ColumnCategory],
		co2e:     found[ColumnCO2e],
	}, nil
}

func normalizeHeader(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDate accepts ISO and US-style dates as well as spreadsheet serial
// numbers, and truncates the result to a UTC calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q: %w", value, err)
		}
		return CalendarDate(t), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseCO2e(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	if err := CheckCO2e(v); err != nil {
		return 0, err
	}
	return v, nil
}

// CheckCO2e rejects amounts that are negative, NaN or infinite.
func CheckCO2e(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("value must be a non-negative finite number, got %v", v)
	}
	return nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
