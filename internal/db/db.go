package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	// The three interchangeable storage drivers.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/okandemir/studentdesk/internal/config"
)

// Database is the process-wide storage handle: one *sql.DB plus the dialect
// it was opened with. It is constructed once by the composition root and
// injected into repositories; there is no ambient/global lookup.
type Database struct {
	SQL     *sql.DB
	Dialect Dialect
}

// NewDatabase opens the backend selected by configuration and verifies
// connectivity. The handle is reused for the lifetime of the process.
func NewDatabase(cfg *config.Config) (*Database, error) {
	dialect, err := ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	dsn := dialect.DSN(cfg.Database.URL, cfg.Database.AuthToken)
	sqlDB, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &Database{SQL: sqlDB, Dialect: dialect}, nil
}

// Builder returns a statement builder configured with the active backend's
// placeholder format.
func (db *Database) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(db.Dialect.Placeholder())
}

// Close releases the connection pool.
func (db *Database) Close() {
	if db.SQL != nil {
		_ = db.SQL.Close()
	}
}
