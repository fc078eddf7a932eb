package dberrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// This package is the single place that understands driver-specific failure
// signals. Everything above it deals in the apperrors taxonomy only.

// postgres error classes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation    = "23505"
	pgConnectionClassPfx = "08"
	pgInsufficientResPfx = "53"
	pgQueryCanceled      = "57014"
	pgAdminShutdown      = "57P01"
	pgCrashShutdown      = "57P02"
	pgCannotConnectNow   = "57P03"
)

// sqlite and libsql surface constraint failures as plain error strings, so
// the check falls back to message matching for those drivers.
var uniqueViolationSubstrings = []string{
	"UNIQUE constraint failed",     // modernc.org/sqlite
	"SQLITE_CONSTRAINT",            // libsql remote protocol
	"duplicate key value violates", // postgres message text
}

// IsUniqueViolation reports whether the error is a unique-constraint
// violation on any of the supported backends.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	msg := err.Error()
	for _, s := range uniqueViolationSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// IsUnavailable reports whether the error indicates the backend could not be
// reached or the operation timed out, i.e. the caller may retry.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, pgConnectionClassPfx):
			return true
		case strings.HasPrefix(pgErr.Code, pgInsufficientResPfx):
			return true
		case pgErr.Code == pgQueryCanceled,
			pgErr.Code == pgAdminShutdown,
			pgErr.Code == pgCrashShutdown,
			pgErr.Code == pgCannotConnectNow:
			return true
		}
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "i/o timeout")
}
