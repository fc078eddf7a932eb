package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Dialect identifies one of the interchangeable storage backends. Repository
// code never branches on it; everything backend-specific (placeholder style,
// identifier quoting, DDL text, DSN shape) is answered here.
type Dialect string

const (
	// SQLite is the embedded file-based engine.
	SQLite Dialect = "sqlite"
	// Postgres is the networked connection-pool backend.
	Postgres Dialect = "postgres"
	// LibSQL is the remote managed SQL endpoint (token-authenticated).
	LibSQL Dialect = "libsql"
)

// ParseDialect maps a config driver key to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case SQLite, Postgres, LibSQL:
		return Dialect(name), nil
	}
	return "", fmt.Errorf("unknown database driver %q", name)
}

// DriverName returns the database/sql driver registration name.
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case LibSQL:
		return "libsql"
	default:
		return "sqlite"
	}
}

// Placeholder returns the squirrel placeholder format for the backend:
// positional $n for postgres, ? for the sqlite-family backends.
func (d Dialect) Placeholder() squirrel.PlaceholderFormat {
	if d == Postgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// QuoteIdent quotes a column or table identifier. The schema uses camelCase
// column names, which postgres would fold to lowercase if left unquoted; all
// three backends accept double-quoted identifiers.
func (d Dialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// DSN builds the driver connection string from the configured URL and
// optional auth token.
func (d Dialect) DSN(rawURL, authToken string) string {
	if d == LibSQL && authToken != "" {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		return rawURL + sep + "authToken=" + url.QueryEscape(authToken)
	}
	return rawURL
}

// CreateUsersTable returns the create-if-absent DDL for the users table.
func (d Dialect) CreateUsersTable() string {
	if d == Postgres {
		return `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			"createdAt" TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	}
	return `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		"createdAt" DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
}

// CreateStudentsTable returns the create-if-absent DDL for the students table.
func (d Dialect) CreateStudentsTable() string {
	if d == Postgres {
		return `
		CREATE TABLE IF NOT EXISTS students (
			id BIGSERIAL PRIMARY KEY,
			"firstName" TEXT NOT NULL,
			"lastName" TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			phone TEXT,
			"enrollmentNumber" TEXT UNIQUE NOT NULL,
			"dateOfBirth" TEXT,
			address TEXT,
			"createdAt" TIMESTAMPTZ NOT NULL DEFAULT now(),
			"updatedAt" TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	}
	return `
	CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		"firstName" TEXT NOT NULL,
		"lastName" TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		"enrollmentNumber" TEXT UNIQUE NOT NULL,
		"dateOfBirth" TEXT,
		address TEXT,
		"createdAt" DATETIME DEFAULT CURRENT_TIMESTAMP,
		"updatedAt" DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
}
