package store

import "time"

// EmissionRow is a parsed spreadsheet or table row. Row is the 1-based
// position in the source, zero when the source has no row numbers.
type EmissionRow struct {
	Row      int
	UserID   string
	Date     time.Time
	Category string
	CO2e     float64
}

type DatasetStats struct {
	RecordsCount    int64
	FirstRecordTime *time.Time
	LastRecordTime  *time.Time
}
