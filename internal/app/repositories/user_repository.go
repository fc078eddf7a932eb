package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/okandemir/studentdesk/internal/app/models"
	"github.com/okandemir/studentdesk/internal/db"
	"github.com/okandemir/studentdesk/internal/pkg/apperrors"
	"github.com/okandemir/studentdesk/internal/pkg/dberrors"
	"github.com/okandemir/studentdesk/internal/pkg/logger"
)

// IUserRepository is the read-only lookup surface used for authentication.
// User rows are written only by the schema bootstrap; no create/update/delete
// is exposed here.
type IUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserRepository handles user lookups.
type UserRepository struct {
	db *db.Database
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(database *db.Database) *UserRepository {
	return &UserRepository{
		db: database,
		sb: database.Builder(),
	}
}

// FindByEmail returns the user with that email, or ErrNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	quote := r.db.Dialect.QuoteIdent
	query, args, err := r.sb.Select(
		quote("id"), quote("email"), quote("password"), quote("name"), quote("createdAt"),
	).
		From("users").
		Where(squirrel.Eq{quote("email"): email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find user query: %w", err)
	}

	var user models.User
	err = r.db.SQL.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		if dberrors.IsUnavailable(err) {
			logger.Error().Err(err).Msg("Storage backend unavailable while finding user")
			return nil, apperrors.NewUnavailableError("storage unavailable while finding user")
		}
		logger.Error().Err(err).Msg("Storage error while finding user")
		return nil, &apperrors.CustomError{Err: apperrors.ErrInternal, Message: "error finding user"}
	}

	return &user, nil
}
