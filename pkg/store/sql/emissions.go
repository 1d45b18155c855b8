package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/adapters"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/models/store"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/rs/zerolog"
)

const DefaultTable = "emission_records"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

type loader struct {
	db     *sql.DB
	table  string
	source string
	now    func() time.Time
}

// NewLoader reads the dataset from a table with the columns
// user_id, date, category and co2e_kg.
func NewLoader(db *sql.DB, table, source string) (dataset.Loader, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &loader{db: db, table: table, source: source, now: time.Now}, nil
}

func (l *loader) Load(ctx context.Context) (*domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)
	query := fmt.Sprintf(`
		SELECT user_id, date, category, co2e_kg
		FROM %s
		ORDER BY date, user_id, category`, l.table)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("emission query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close emission query rows")
		}
	}(rows)

	var records []store.EmissionRow
	for rows.Next() {
		var (
			userID, category string
			date             time.Time
			co2e             float64
		)
		if err := rows.Scan(&userID, &date, &category, &co2e); err != nil {
			return nil, fmt.Errorf("scan emission row: %w", err)
		}
		if err := dataset.CheckCO2e(co2e); err != nil {
			return nil, fmt.Errorf("row %d, co2e_kg: %w", len(records)+1, err)
		}
		records = append(records, store.EmissionRow{
			Row:      len(records) + 1,
			UserID:   userID,
			Date:     dataset.CalendarDate(date),
			Category: strings.TrimSpace(category),
			CO2e:     co2e,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate emission rows: %w", err)
	}

	return adapters.MapStoreEmissionRowsToDataset(records, l.source, l.now().UTC()), nil
}
