package dataset

import (
	"bytes"
	"testing"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportRecords = []domain.EmissionRecord{
	{UserID: "User001", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Category: "Transportation", CO2e: 10.5},
	{UserID: "User001", Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), Category: "Diet", CO2e: 5},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportRecords))

	assert.Equal(t, "Date,Category,CO2e (kg)\n2024-01-05,Transportation,10.5\n2024-01-20,Diet,5\n", buf.String())
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "Date,Category,CO2e (kg)\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportRecords))

	table, err := ReadXLSX(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Category", "CO2e (kg)"},
		{"2024-01-05", "Transportation", "10.5"},
		{"2024-01-20", "Diet", "5"},
	}, table)
}
