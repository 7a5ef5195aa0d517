// Package mocks provides mock implementations for testing the jobagent auth system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockIdentityStore(ctrl)
//	store.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(identity, nil)
package mocks

// Generate mock for IdentityStore interface from internal/ports.
// This creates MockIdentityStore with methods for all IdentityStore interface methods:
// Create, GetByEmail, GetByID, UpdateRole
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=identity_store_mock.go github.com/jobagent/jobagent/internal/ports IdentityStore

// Generate mock for SessionStore interface from internal/ports.
// This creates MockSessionStore with methods for all SessionStore interface methods:
// Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/jobagent/jobagent/internal/ports SessionStore
