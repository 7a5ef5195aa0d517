package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	apperrors "github.com/jobagent/jobagent/internal/errors"
	"github.com/jobagent/jobagent/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
	_ ports.IdentityStore = (*MemoryIdentityStore)(nil)
	_ ports.SSOProvider   = (*MockSSOProvider)(nil)
)

// MemorySessionStore is an in-memory ports.SessionStore for tests and dev mode.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// MemoryIdentityStore is an in-memory ports.IdentityStore for tests and dev mode.
type MemoryIdentityStore struct {
	mu      sync.Mutex
	byID    map[string]domainauth.Identity
	byEmail map[string]string // email → id
}

// NewMemoryIdentityStore creates an empty in-memory identity store.
func NewMemoryIdentityStore() *MemoryIdentityStore {
	return &MemoryIdentityStore{
		byID:    make(map[string]domainauth.Identity),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryIdentityStore) Create(_ context.Context, in ports.NewIdentity) (domainauth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[in.Email]; exists {
		// Mirror the error kind the Postgres store produces for a unique
		// violation on the email column.
		return domainauth.Identity{}, apperrors.DuplicateAccount()
	}
	identity := domainauth.Identity{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: in.PasswordHash,
	}
	s.byID[identity.ID] = identity
	s.byEmail[identity.Email] = identity.ID
	return identity, nil
}

func (s *MemoryIdentityStore) GetByEmail(_ context.Context, email string) (domainauth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return domainauth.Identity{}, apperrors.NotFound("identity not found")
	}
	return s.byID[id], nil
}

func (s *MemoryIdentityStore) GetByID(_ context.Context, id string) (domainauth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.byID[id]
	if !ok {
		return domainauth.Identity{}, apperrors.NotFound("identity not found")
	}
	return identity, nil
}

func (s *MemoryIdentityStore) UpdateRole(_ context.Context, id string, role domainauth.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.byID[id]
	if !ok {
		return apperrors.NotFound("identity not found")
	}
	identity.Role = role
	s.byID[id] = identity
	return nil
}

// MockSSOProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockSSOProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (ports.SSOIdentity, error)

	// Deterministic values for predictable testing
	AuthURL      string
	DefaultEmail string
	Groups       []string

	callCount int
}

// NewMockSSOProvider creates a MockSSOProvider with sensible defaults.
func NewMockSSOProvider() *MockSSOProvider {
	return &MockSSOProvider{
		AuthURL:      "https://mock-idp/auth",
		DefaultEmail: "mock.user@example.com",
		Groups:       []string{"candidates"},
	}
}

func (m *MockSSOProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.callCount++
	state := fmt.Sprintf("state-%d", m.callCount)
	nonce := fmt.Sprintf("nonce-%d", m.callCount)
	return m.AuthURL, state, nonce, nil
}

func (m *MockSSOProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (ports.SSOIdentity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	return ports.SSOIdentity{
		Subject: "mock-subject-1",
		Email:   m.DefaultEmail,
		Groups:  append([]string(nil), m.Groups...),
	}, nil
}
