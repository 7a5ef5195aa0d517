package auth

import "time"

const (
	// DefaultSessionLifetime is the total validity of a freshly issued session.
	DefaultSessionLifetime = 7 * 24 * time.Hour
	// DefaultRenewalWindow is the trailing portion of the lifetime during which
	// activity extends the session by a full lifetime.
	DefaultRenewalWindow = 24 * time.Hour
)

// RenewalPolicy describes the sliding-expiry behavior of sessions: a session
// accessed with less than RenewWithin remaining is extended to now+Lifetime.
// A session is never extended earlier than the window, so a single burst of
// activity cannot keep a session alive indefinitely.
type RenewalPolicy struct {
	Lifetime    time.Duration
	RenewWithin time.Duration
}

// DefaultRenewalPolicy returns the standard 7-day lifetime, 1-day window policy.
func DefaultRenewalPolicy() RenewalPolicy {
	return RenewalPolicy{
		Lifetime:    DefaultSessionLifetime,
		RenewWithin: DefaultRenewalWindow,
	}
}

// ShouldRenew reports whether a session accessed at now is inside the renewal
// window. Remaining time equal to the window does not renew: the window is the
// strictly trailing portion of the lifetime.
func (p RenewalPolicy) ShouldRenew(s Session, now time.Time) bool {
	remaining := s.ExpiresAt.Sub(now)
	return remaining > 0 && remaining < p.RenewWithin
}

// Renew returns a copy of the session with expiry extended to now+Lifetime.
// Callers are expected to check ShouldRenew first.
func (p RenewalPolicy) Renew(s Session, now time.Time) Session {
	s.ExpiresAt = now.Add(p.Lifetime)
	return s
}
