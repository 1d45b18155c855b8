package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "emissions.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFileLoader_XLSX(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"UserID", "Date", "Category", "CO2e (kg)"},
		{"User001", 45296, "Transportation", 10.0},
		{"User001", "2024-01-20", "Diet", 5.0},
		{" User001 ", "2024-02-01", "Transportation", 7.25},
	})

	source, err := NewFileSource(path, "")
	require.NoError(t, err)

	ds, err := NewTableLoader(source).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, "file:"+path, ds.Source)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ds.Records[0].Date)
	assert.Equal(t, 10.0, ds.Records[0].CO2e)
	assert.Equal(t, " User001 ", ds.Records[2].UserID)
	assert.Equal(t, 7.25, ds.Records[2].CO2e)
	assert.False(t, ds.LoadedAt.IsZero())
}

func TestFileLoader_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emissions.csv")
	content := strings.Join([]string{
		"UserID,Date,Category,CO2e (kg)",
		"User002, 2024-05-01, Electricity, 3.5",
		"User002,2024-05-02,Diet,1.5",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	source, err := NewFileSource(path, "")
	require.NoError(t, err)

	ds, err := NewTableLoader(source).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "Electricity", ds.Records[0].Category)
	assert.Equal(t, 3.5, ds.Records[0].CO2e)
}

func TestFileLoader_Errors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewFileSource("emissions.json", "")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		source, err := NewFileSource(filepath.Join(t.TempDir(), "absent.csv"), "")
		require.NoError(t, err)

		_, err = NewTableLoader(source).Load(context.Background())
		assert.ErrorContains(t, err, "open dataset file")
	})

	t.Run("unknown sheet", func(t *testing.T) {
		path := writeWorkbook(t, [][]interface{}{{"UserID", "Date", "Category", "CO2e (kg)"}})
		source, err := NewFileSource(path, "Missing")
		require.NoError(t, err)

		_, err = NewTableLoader(source).Load(context.Background())
		assert.Error(t, err)
	})
}

func TestFormatFromName(t *testing.T) {
	format, err := FormatFromName("s3/path/Data.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)

	format, err = FormatFromName("export.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)
}
