package auth

// Package auth contains domain-level types for identity and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	// RoleCandidate is the default role assigned at signup. Candidates track
	// their own job applications and see only their own data.
	RoleCandidate Role = "candidate"
	// RoleAdmin is the elevated role. It is never assignable through signup;
	// the only path is the admin CLI (cmd/jobagent-admin).
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleAdmin
}

// Identity represents a registered user record.
// PasswordHash is the stored bcrypt credential; it never leaves the server.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin returns true if the identity holds the elevated role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier (random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Expired reports whether the session has passed its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
