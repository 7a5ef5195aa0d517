// Package data provides Postgres-backed repositories.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	apperrors "github.com/jobagent/jobagent/internal/errors"
	"github.com/jobagent/jobagent/internal/ports"
)

// UserRepo provides database operations for user accounts. It is the
// production ports.IdentityStore.
type UserRepo struct {
	DB *sql.DB
}

var _ ports.IdentityStore = (*UserRepo)(nil)

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, email, COALESCE(password_hash, ''), role, created_at`

// Create inserts a new user. The role column has its own default, so an
// explicit role is only sent when the caller set one.
func (r *UserRepo) Create(ctx context.Context, in ports.NewIdentity) (domainauth.Identity, error) {
	if in.Email == "" {
		return domainauth.Identity{}, errors.New("email is required")
	}
	role := in.Role
	if role == "" {
		role = domainauth.RoleCandidate
	}

	var passwordHash sql.NullString
	if in.PasswordHash != "" {
		passwordHash = sql.NullString{String: in.PasswordHash, Valid: true}
	}

	var out domainauth.Identity
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		in.Email, passwordHash, string(role),
	).Scan(&out.ID, &out.Email, &out.PasswordHash, &out.Role, &out.CreatedAt)
	if err != nil {
		return domainauth.Identity{}, apperrors.MapDBError(err)
	}
	return out, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domainauth.Identity, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (domainauth.Identity, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// UpdateRole changes a user's role. This is the only write path that can
// produce an admin; it is reachable solely from the admin CLI.
func (r *UserRepo) UpdateRole(ctx context.Context, id string, role domainauth.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}

	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = now() WHERE id = $2`,
		string(role), id,
	)
	if err != nil {
		return apperrors.MapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

func (r *UserRepo) getByQuery(ctx context.Context, query, arg string) (domainauth.Identity, error) {
	var out domainauth.Identity
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&out.ID, &out.Email, &out.PasswordHash, &out.Role, &out.CreatedAt)
	if err != nil {
		return domainauth.Identity{}, apperrors.MapDBError(err)
	}
	return out, nil
}
