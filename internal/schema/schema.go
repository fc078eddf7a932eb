package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/okandemir/studentdesk/internal/db"
	"github.com/okandemir/studentdesk/internal/pkg/auth"
	"github.com/okandemir/studentdesk/internal/pkg/dberrors"
)

// BootstrapAdmin describes the single seeded identity that permits first
// login. The defaults are documented and expected to be rotated post-deploy.
type BootstrapAdmin struct {
	Email    string
	Password string
	Name     string
}

// Manager idempotently prepares the database schema and seeds the bootstrap
// administrator. It runs once at process start, not per-request, so failures
// propagate fatally and are never retried here.
type Manager struct {
	db  *db.Database
	log zerolog.Logger
}

// NewManager creates a schema Manager.
func NewManager(database *db.Database, log zerolog.Logger) *Manager {
	return &Manager{db: database, log: log}
}

// Initialize ensures both tables exist and the bootstrap administrator row
// is present. Safe to invoke on every start and concurrently from multiple
// processes: table creation is create-if-absent, and a racing seed insert
// that loses to the unique email constraint counts as already bootstrapped.
func (m *Manager) Initialize(ctx context.Context, admin BootstrapAdmin) error {
	if _, err := m.db.SQL.ExecContext(ctx, m.db.Dialect.CreateUsersTable()); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	if _, err := m.db.SQL.ExecContext(ctx, m.db.Dialect.CreateStudentsTable()); err != nil {
		return fmt.Errorf("failed to create students table: %w", err)
	}

	return m.seedAdmin(ctx, admin)
}

func (m *Manager) seedAdmin(ctx context.Context, admin BootstrapAdmin) error {
	quote := m.db.Dialect.QuoteIdent
	sb := m.db.Builder()

	query, args, err := sb.Select(quote("id")).
		From("users").
		Where("email = ?", admin.Email).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build bootstrap lookup query: %w", err)
	}

	var id int64
	err = m.db.SQL.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == nil {
		m.log.Debug().Str("email", admin.Email).Msg("Bootstrap administrator already present")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check bootstrap administrator: %w", err)
	}

	hashed, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	query, args, err = sb.Insert("users").
		Columns(quote("email"), quote("password"), quote("name")).
		Values(admin.Email, hashed, admin.Name).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build bootstrap insert query: %w", err)
	}

	if _, err := m.db.SQL.ExecContext(ctx, query, args...); err != nil {
		// The check-then-insert is racy on concurrent first boot; the
		// unique email constraint is the real guard. Losing that race
		// means another process seeded the row first.
		if dberrors.IsUniqueViolation(err) {
			m.log.Debug().Str("email", admin.Email).Msg("Bootstrap administrator seeded by another process")
			return nil
		}
		return fmt.Errorf("failed to seed bootstrap administrator: %w", err)
	}

	m.log.Info().Str("email", admin.Email).Msg("Bootstrap administrator created")
	return nil
}
