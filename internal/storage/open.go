package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// DBConfig selects the SQL driver and connection string for a BunStore.
type DBConfig struct {
	Driver string
	DSN    string
}

// OpenDB opens a database handle with the Bun dialect matching cfg.Driver.
// Supported drivers are sqlite3 and postgres.
func OpenDB(cfg DBConfig) (*bun.DB, error) {
	driver, dialect, err := resolveDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("storage: dsn is required for driver %s", driver)
	}
	sqldb, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}
	return bun.NewDB(sqldb, dialect), nil
}

func resolveDriver(name string) (string, schema.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return "sqlite3", sqlitedialect.New(), nil
	case "postgres", "postgresql", "pg":
		return "postgres", pgdialect.New(), nil
	default:
		return "", nil, fmt.Errorf("storage: unsupported driver %q", name)
	}
}
