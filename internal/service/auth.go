package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	apperrors "github.com/jobagent/jobagent/internal/errors"
	"github.com/jobagent/jobagent/internal/ports"
)

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Identities ports.IdentityStore
	Sessions   ports.SessionStore
	Renewal    domainauth.RenewalPolicy
	// DefaultRole is stored for every signup regardless of caller input.
	DefaultRole domainauth.Role
	BcryptCost  int
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// AuthService is the email+password implementation of ports.AuthProvider.
// It orchestrates credential verification, identity persistence, and session
// lifecycle including the sliding renewal policy.
type AuthService struct {
	identities  ports.IdentityStore
	sessions    ports.SessionStore
	renewal     domainauth.RenewalPolicy
	defaultRole domainauth.Role
	bcryptCost  int
	now         func() time.Time
}

var _ ports.AuthProvider = (*AuthService)(nil)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	renewal := opts.Renewal
	if renewal.Lifetime == 0 {
		renewal = domainauth.DefaultRenewalPolicy()
	}
	role := opts.DefaultRole
	if role == "" {
		role = domainauth.RoleCandidate
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		identities:  opts.Identities,
		sessions:    opts.Sessions,
		renewal:     renewal,
		defaultRole: role,
		bcryptCost:  cost,
		now:         now,
	}
}

// SignUp registers a new identity. The stored role is always the configured
// default; there is no parameter for it and handler-level inputs never reach
// this path, so privilege escalation at signup is structurally impossible.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (domainauth.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domainauth.Identity{}, err
	}
	if len(password) < MinPasswordLength {
		return domainauth.Identity{}, apperrors.ValidationField("password",
			fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	identity, err := s.identities.Create(ctx, ports.NewIdentity{
		Email:        email,
		PasswordHash: string(hash),
		Role:         s.defaultRole,
	})
	if err != nil {
		return domainauth.Identity{}, apperrors.MapDBError(err)
	}

	return identity, nil
}

// SignIn verifies credentials and issues a session. Unknown email and wrong
// password produce the identical invalid_credentials error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domainauth.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domainauth.Session{}, err
	}

	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsNotFound(mapped) {
			return domainauth.Session{}, apperrors.InvalidCredentials()
		}
		return domainauth.Session{}, mapped
	}
	if identity.PasswordHash == "" {
		// SSO-provisioned account with no local credential.
		return domainauth.Session{}, apperrors.InvalidCredentials()
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return domainauth.Session{}, apperrors.InvalidCredentials()
	}

	return s.issueSession(ctx, identity)
}

// GetSession resolves a session ID, applying the sliding renewal policy: a
// session accessed inside the renewal window is extended to now+lifetime and
// re-persisted; outside the window the expiry is untouched.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (domainauth.Session, error) {
	if sessionID == "" {
		return domainauth.Session{}, apperrors.SessionExpired()
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return domainauth.Session{}, apperrors.SessionExpired()
		}
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "get session")
	}

	now := s.now()
	if sess.Expired(now) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return domainauth.Session{}, apperrors.Wrap(deleteErr, apperrors.ErrCodeInternal, "delete expired session")
		}
		return domainauth.Session{}, apperrors.SessionExpired()
	}

	if s.renewal.ShouldRenew(sess, now) {
		renewed := s.renewal.Renew(sess, now)
		if saveErr := s.sessions.Save(ctx, renewed); saveErr != nil {
			// Renewal is best-effort: the un-renewed session is still valid.
			return sess, nil
		}
		return renewed, nil
	}

	return sess, nil
}

// SignOut removes a session. Missing or unknown session IDs are a no-op.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session")
	}
	return nil
}

// issueSession creates and persists a fresh session for the identity.
func (s *AuthService) issueSession(ctx context.Context, identity domainauth.Identity) (domainauth.Session, error) {
	now := s.now()
	sess := domainauth.Session{
		ID:        newSessionID(),
		UserID:    identity.ID,
		Email:     identity.Email,
		Role:      identity.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.renewal.Lifetime),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}
	return sess, nil
}

// normalizeEmail lowercases and trims the address and rejects obviously
// malformed input before it reaches the store.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperrors.ValidationField("email", "Email is required.")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", apperrors.ValidationField("email", "Enter a valid email address.")
	}
	return email, nil
}

// newSessionID creates a cryptographically secure random session ID.
func newSessionID() string {
	// UUIDv4 is URL-safe and has good entropy.
	return uuid.New().String()
}
