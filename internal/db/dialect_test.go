package db

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	for _, name := range []string{"sqlite", "postgres", "libsql"} {
		d, err := ParseDialect(name)
		require.NoError(t, err)
		assert.Equal(t, Dialect(name), d)
	}

	_, err := ParseDialect("mysql")
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestDialect_DriverName(t *testing.T) {
	assert.Equal(t, "sqlite", SQLite.DriverName())
	assert.Equal(t, "pgx", Postgres.DriverName())
	assert.Equal(t, "libsql", LibSQL.DriverName())
}

func TestDialect_Placeholder(t *testing.T) {
	assert.Equal(t, squirrel.Dollar, Postgres.Placeholder())
	assert.Equal(t, squirrel.Question, SQLite.Placeholder())
	assert.Equal(t, squirrel.Question, LibSQL.Placeholder())
}

func TestDialect_QuoteIdent(t *testing.T) {
	assert.Equal(t, `"createdAt"`, SQLite.QuoteIdent("createdAt"))
	assert.Equal(t, `"a""b"`, Postgres.QuoteIdent(`a"b`))
}

func TestDialect_DSN(t *testing.T) {
	assert.Equal(t,
		"libsql://records.turso.io?authToken=tok%2F1",
		LibSQL.DSN("libsql://records.turso.io", "tok/1"))
	assert.Equal(t,
		"libsql://records.turso.io?tls=1&authToken=tok",
		LibSQL.DSN("libsql://records.turso.io?tls=1", "tok"))
	assert.Equal(t,
		"libsql://records.turso.io",
		LibSQL.DSN("libsql://records.turso.io", ""))

	// Other backends pass the URL through untouched.
	assert.Equal(t, "file:students.db", SQLite.DSN("file:students.db", "ignored"))
	assert.Equal(t,
		"postgres://app@localhost/studentdesk",
		Postgres.DSN("postgres://app@localhost/studentdesk", ""))
}

func TestDialect_DDLPerBackend(t *testing.T) {
	assert.Contains(t, Postgres.CreateUsersTable(), "BIGSERIAL")
	assert.Contains(t, Postgres.CreateStudentsTable(), "TIMESTAMPTZ")
	assert.Contains(t, SQLite.CreateUsersTable(), "INTEGER PRIMARY KEY AUTOINCREMENT")
	assert.Contains(t, LibSQL.CreateStudentsTable(), "INTEGER PRIMARY KEY AUTOINCREMENT")

	for _, d := range []Dialect{SQLite, Postgres, LibSQL} {
		assert.Contains(t, d.CreateStudentsTable(), `"enrollmentNumber" TEXT UNIQUE NOT NULL`)
		assert.Contains(t, d.CreateUsersTable(), "email TEXT UNIQUE NOT NULL")
	}
}
