package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/okandemir/studentdesk/internal/app/models"
	"github.com/okandemir/studentdesk/internal/db"
	"github.com/okandemir/studentdesk/internal/pkg/apperrors"
	"github.com/okandemir/studentdesk/internal/pkg/dberrors"
	"github.com/okandemir/studentdesk/internal/pkg/logger"
)

// conflictMessage deliberately does not say which constraint collided; the
// core does not disambiguate dialect-specific constraint names.
const conflictMessage = "email or enrollment number already exists"

// studentColumns is the allow-list for dynamically assembled statements.
// Keys arriving from a partial-update payload that are not listed here are
// rejected before any SQL is built.
var studentColumns = []string{
	"firstName",
	"lastName",
	"email",
	"phone",
	"enrollmentNumber",
	"dateOfBirth",
	"address",
}

var studentColumnSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(studentColumns))
	for _, c := range studentColumns {
		set[c] = struct{}{}
	}
	return set
}()

// IStudentRepository defines the student persistence operations.
type IStudentRepository interface {
	List(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

// StudentRepository owns the students table. Statements are assembled with
// the active backend's placeholder and quoting rules, so the repository reads
// the same against all three drivers.
type StudentRepository struct {
	db *db.Database
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(database *db.Database) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: database.Builder(),
	}
}

// quoted returns the identifier quoted for the active backend.
func (r *StudentRepository) quoted(col string) string {
	return r.db.Dialect.QuoteIdent(col)
}

// selectColumns returns all student columns, quoted, in declaration order.
func (r *StudentRepository) selectColumns() []string {
	cols := make([]string, 0, len(studentColumns)+3)
	cols = append(cols, r.quoted("id"))
	for _, c := range studentColumns {
		cols = append(cols, r.quoted(c))
	}
	cols = append(cols, r.quoted("createdAt"), r.quoted("updatedAt"))
	return cols
}

func (r *StudentRepository) scanStudent(row squirrel.RowScanner) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.Phone,
		&student.EnrollmentNumber,
		&student.DateOfBirth,
		&student.Address,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// List returns all students ordered by creation time, newest first. The
// createdAt column has second resolution on the sqlite-family backends, so
// id breaks ties between rows created within the same second. The result is
// never nil.
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	query, args, err := r.sb.Select(r.selectColumns()...).
		From("students").
		OrderBy(r.quoted("createdAt")+" DESC", r.quoted("id")+" DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.classify(err, "listing students")
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		student, err := r.scanStudent(rows)
		if err != nil {
			return nil, r.classify(err, "scanning student row")
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify(err, "iterating student rows")
	}

	return students, nil
}

// GetByID returns the student with that id, or ErrNotFound.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.sb.Select(r.selectColumns()...).
		From("students").
		Where(squirrel.Eq{r.quoted("id"): id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := r.scanStudent(r.db.SQL.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("student not found")
		}
		return nil, r.classify(err, "retrieving student")
	}

	return student, nil
}

// Create inserts a fully-formed student and fills in the assigned id and
// timestamps. Uniqueness is enforced by the store and surfaced as Conflict.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query, args, err := r.sb.Insert("students").
		Columns(
			r.quoted("firstName"), r.quoted("lastName"), r.quoted("email"),
			r.quoted("phone"), r.quoted("enrollmentNumber"),
			r.quoted("dateOfBirth"), r.quoted("address"),
		).
		Values(
			student.FirstName, student.LastName, student.Email,
			student.Phone, student.EnrollmentNumber,
			student.DateOfBirth, student.Address,
		).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s",
			r.quoted("id"), r.quoted("createdAt"), r.quoted("updatedAt"))).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.SQL.QueryRowContext(ctx, query, args...).
		Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().
				Str("email", student.Email).
				Str("enrollmentNumber", student.EnrollmentNumber).
				Msg("Attempted to create student violating a unique constraint")
			return apperrors.NewConflictError(conflictMessage)
		}
		return r.classify(err, "creating student")
	}

	logger.Info().Int64("studentID", student.ID).Msg("Student created")
	return nil
}

// Update assembles an update statement covering exactly the supplied fields,
// always refreshing updatedAt, and returns the merged entity. An empty field
// map degrades to an updatedAt-only touch. Keys outside the column
// allow-list are rejected.
func (r *StudentRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Student, error) {
	for key := range fields {
		if _, ok := studentColumnSet[key]; !ok {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("unknown field %q", key))
		}
	}

	ub := r.sb.Update("students")
	// Fixed column order keeps the generated statement deterministic.
	for _, col := range studentColumns {
		if value, ok := fields[col]; ok {
			ub = ub.Set(r.quoted(col), value)
		}
	}
	ub = ub.Set(r.quoted("updatedAt"), squirrel.Expr("CURRENT_TIMESTAMP"))

	query, args, err := ub.
		Where(squirrel.Eq{r.quoted("id"): id}).
		Suffix("RETURNING " + strings.Join(r.selectColumns(), ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	student, err := r.scanStudent(r.db.SQL.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("student not found")
		}
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Int64("studentID", id).
				Msg("Attempted to update student violating a unique constraint")
			return nil, apperrors.NewConflictError(conflictMessage)
		}
		return nil, r.classify(err, "updating student")
	}

	return student, nil
}

// Delete removes the row. Deleting an id that does not exist is not an error
// at this layer; the not-found check is an API-boundary concern.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{r.quoted("id"): id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	if _, err := r.db.SQL.ExecContext(ctx, query, args...); err != nil {
		return r.classify(err, "deleting student")
	}

	return nil
}

// classify normalizes a driver error into the taxonomy. Unique violations
// are handled at the call sites that can hit them.
func (r *StudentRepository) classify(err error, op string) error {
	if dberrors.IsUnavailable(err) {
		logger.Error().Err(err).Msg("Storage backend unavailable while " + op)
		return apperrors.NewUnavailableError("storage unavailable while " + op)
	}
	logger.Error().Err(err).Msg("Storage error while " + op)
	return &apperrors.CustomError{Err: apperrors.ErrInternal, Message: "error " + op}
}
