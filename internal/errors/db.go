package errors

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors to AppError instances:
//   - pgx.ErrNoRows / sql.ErrNoRows → NotFound
//   - unique violation on users.email → DuplicateAccount
//   - other unique violations → Validation on the offending column
//   - NOT NULL / CHECK violations → Validation
//   - context timeouts/cancellations → Timeout/Canceled
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Resource not found",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.NotNullViolation:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "This field is required.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	case pgerrcode.CheckViolation:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "Invalid data. Please check your input.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

// mapUniqueViolation maps unique constraint violations. The only unique
// constraint in the schema a client can trip is the email column on users, so
// that case gets the dedicated duplicate_account code.
func mapUniqueViolation(pgErr *pgconn.PgError) error {
	if uniqueViolationField(pgErr) == "email" {
		dup := DuplicateAccount()
		dup.Cause = pgErr
		return dup
	}
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "This value already exists. Please choose a different one.",
		Field:   uniqueViolationField(pgErr),
		Cause:   pgErr,
	}
}

// uniqueViolationField extracts the offending column from a unique violation,
// preferring ColumnName metadata and falling back to the constraint name
// convention "table_column_key".
func uniqueViolationField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := pgErr.ConstraintName
	if name == "" {
		return ""
	}
	// users_email_key → email
	parts := splitConstraint(name)
	if len(parts) == 3 && parts[2] == "key" {
		return parts[1]
	}
	return ""
}

func splitConstraint(name string) []string {
	var parts []string
	start := 0
	for i := range len(name) {
		if name[i] == '_' {
			parts = append(parts, name[start:i])
			start = i + 1
		}
	}
	return append(parts, name[start:])
}
