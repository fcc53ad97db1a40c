package database

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/config"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

func Connect() (*sqlx.DB, error) {
	return Open(config.DBDriver(), config.DBDSN())
}

// Open connects with one of the supported drivers ("sqlite" or "pgx").
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite", "pgx":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// a single writer keeps the conditional decrement serialized
		db.SetMaxOpenConns(1)
	}
	return db, nil
}
