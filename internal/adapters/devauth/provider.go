// Package devauth provides a config-driven AuthProvider for local development.
package devauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	apperrors "github.com/jobagent/jobagent/internal/errors"
	"github.com/jobagent/jobagent/internal/ports"
)

// Config controls the dev auth provider.
type Config struct {
	// Email is the identity every sign-in resolves to. Required.
	Email string
	// Role defaults to candidate.
	Role domainauth.Role
	// SessionDuration defaults to 8h when zero.
	SessionDuration time.Duration
}

// Provider implements ports.AuthProvider without any backing store. Any
// email/password combination signs in as the configured identity, and
// sessions live in memory for the lifetime of the process. Never wire this
// outside local development.
type Provider struct {
	identity        domainauth.Identity
	sessionDuration time.Duration

	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	role := cfg.Role
	if role == "" {
		role = domainauth.RoleCandidate
	}
	if !role.Valid() {
		return nil, fmt.Errorf("dev auth: invalid role %q", role)
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{
		identity: domainauth.Identity{
			ID:        "dev-user",
			Email:     strings.ToLower(cfg.Email),
			Role:      role,
			CreatedAt: time.Now(),
		},
		sessionDuration: dur,
		sessions:        make(map[string]domainauth.Session),
	}, nil
}

// SignUp returns the configured identity regardless of input. The role the
// caller might wish for is not even a parameter here.
func (p *Provider) SignUp(_ context.Context, email, _ string) (domainauth.Identity, error) {
	if email == "" {
		return domainauth.Identity{}, apperrors.ValidationField("email", "Email is required.")
	}
	return p.identity, nil
}

// SignIn accepts any credentials and issues a session for the dev identity.
func (p *Provider) SignIn(_ context.Context, _, _ string) (domainauth.Session, error) {
	id, err := randomString(24)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("generate session id: %w", err)
	}
	now := time.Now()
	sess := domainauth.Session{
		ID:        id,
		UserID:    p.identity.ID,
		Email:     p.identity.Email,
		Role:      p.identity.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(p.sessionDuration),
	}
	p.mu.Lock()
	p.sessions[sess.ID] = sess
	p.mu.Unlock()
	return sess, nil
}

func (p *Provider) GetSession(_ context.Context, sessionID string) (domainauth.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	sess, ok := p.sessions[sessionID]
	if !ok {
		return domainauth.Session{}, apperrors.SessionExpired()
	}
	if sess.Expired(time.Now()) {
		delete(p.sessions, sessionID)
		return domainauth.Session{}, apperrors.SessionExpired()
	}
	return sess, nil
}

func (p *Provider) SignOut(_ context.Context, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, sessionID)
	return nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	for len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
