package sql

import (
	"database/sql"
	"fmt"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/marcboeker/go-duckdb/v2"
	_ "github.com/snowflakedb/gosnowflake"
)

var supportedDrivers = map[string]bool{
	"duckdb":     true,
	"databricks": true,
	"snowflake":  true,
}

// Open connects to one of the supported warehouse drivers.
func Open(driver, dsn string) (*sql.DB, error) {
	if !supportedDrivers[driver] {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return db, nil
}
