package emission

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/carbon-atlas/pkg/models/store"
	"github.com/de-tools/carbon-atlas/pkg/store/duckdb"
)

// Store keeps an imported copy of the emission dataset in DuckDB so that the
// web server can use it as a "sql" source with the duckdb driver.
type Store interface {
	Add(ctx context.Context, records []store.EmissionRow) error
	Replace(ctx context.Context, source string, records []store.EmissionRow) error
	GetStats(ctx context.Context) (*store.DatasetStats, error)
}

type emissionStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &emissionStore{
		db: db,
	}, nil
}

func (e *emissionStore) Add(ctx context.Context, records []store.EmissionRow) error {
	if len(records) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO emission_records (user_id, date, category, co2e_kg)
		VALUES (?, ?, ?, ?)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = e.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}

	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err = stmt.ExecContext(ctx,
			record.UserID,
			record.Date,
			record.Category,
			record.CO2e,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return nil
}

// Replace swaps the stored dataset for records in one transaction and logs the
// import in import_history.
func (e *emissionStore) Replace(ctx context.Context, source string, records []store.EmissionRow) error {
	return duckdb.InTransaction(ctx, e.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM emission_records`); err != nil {
			return fmt.Errorf("clear emission records: %w", err)
		}

		if err := e.Add(ctx, records); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO import_history (source, records) VALUES (?, ?)`,
			source, int64(len(records)),
		)
		if err != nil {
			return fmt.Errorf("record import: %w", err)
		}
		return nil
	})
}

func (e *emissionStore) GetStats(ctx context.Context) (*store.DatasetStats, error) {
	query := `SELECT COUNT(*), MIN(date), MAX(date) FROM emission_records`

	var total int64
	var first, last sql.NullTime
	if err := e.db.QueryRowContext(ctx, query).Scan(&total, &first, &last); err != nil {
		return nil, fmt.Errorf("get emission stats: %w", err)
	}

	stats := &store.DatasetStats{RecordsCount: total}
	if first.Valid {
		t := first.Time
		stats.FirstRecordTime = &t
	}
	if last.Valid {
		t := last.Time
		stats.LastRecordTime = &t
	}
	return stats, nil
}
