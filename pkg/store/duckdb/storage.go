package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ImportHistory = `
	CREATE TABLE IF NOT EXISTS import_history (
		source VARCHAR NOT NULL,
		records BIGINT NOT NULL,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`
const EmissionTableSchema = `
	CREATE TABLE IF NOT EXISTS emission_records (
		user_id VARCHAR NOT NULL,
		date DATE NOT NULL,
		category VARCHAR NOT NULL,
		co2e_kg DOUBLE NOT NULL
	);
`

var bootQueries = []string{
	ImportHistory,
	EmissionTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
