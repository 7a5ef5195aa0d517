package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
)

// AuthProvider is the capability boundary the rest of the application depends
// on for authentication. Concrete providers (password, SSO-backed, mock) are
// swappable without touching the shell or route gating.
type AuthProvider interface {
	// SignUp registers a new identity from an email and plaintext password.
	// The stored role is always the configured default; callers cannot choose it.
	SignUp(ctx context.Context, email, password string) (domainauth.Identity, error)

	// SignIn verifies credentials and issues a new session.
	SignIn(ctx context.Context, email, password string) (domainauth.Session, error)

	// GetSession resolves a session ID to a live session, applying the sliding
	// renewal policy. Expired or unknown sessions return a session_expired error.
	GetSession(ctx context.Context, sessionID string) (domainauth.Session, error)

	// SignOut invalidates a session. Unknown session IDs are not an error.
	SignOut(ctx context.Context, sessionID string) error
}

// ErrSessionNotFound is returned by SessionStore implementations when a
// session ID is unknown or already expired out of the store.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// NewIdentity carries the fields needed to create an identity record.
// PasswordHash may be empty for identities provisioned through SSO.
type NewIdentity struct {
	Email        string
	PasswordHash string
	Role         domainauth.Role
}

// IdentityStore persists identity records.
type IdentityStore interface {
	Create(ctx context.Context, in NewIdentity) (domainauth.Identity, error)
	GetByEmail(ctx context.Context, email string) (domainauth.Identity, error)
	GetByID(ctx context.Context, id string) (domainauth.Identity, error)
	UpdateRole(ctx context.Context, id string, role domainauth.Role) error
}

// RoleMapper maps identity-provider groups to application roles.
// Used only for SSO sign-ins; password signups always get the default role.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}

// BeginInput carries inputs for initiating an SSO flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the SSO code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SSOIdentity is the claim set returned by an SSO identity provider.
type SSOIdentity struct {
	Subject string
	Email   string
	Groups  []string
}

// SSOProvider initiates and completes an authentication flow against an IdP.
type SSOProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the claims.
	Exchange(ctx context.Context, in ExchangeInput) (SSOIdentity, error)
}
