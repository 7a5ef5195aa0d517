package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRenewalPolicy(t *testing.T) {
	p := DefaultRenewalPolicy()
	assert.Equal(t, 7*24*time.Hour, p.Lifetime)
	assert.Equal(t, 24*time.Hour, p.RenewWithin)
}

func TestRenewalPolicy_ShouldRenew(t *testing.T) {
	p := DefaultRenewalPolicy()
	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sess := Session{ID: "s1", ExpiresAt: issued.Add(p.Lifetime)}

	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{name: "fresh session", elapsed: 0, want: false},
		{name: "mid lifetime", elapsed: 3 * 24 * time.Hour, want: false},
		{name: "exactly at window boundary", elapsed: p.Lifetime - p.RenewWithin, want: false},
		{name: "one second inside window", elapsed: p.Lifetime - p.RenewWithin + time.Second, want: true},
		{name: "one second before expiry", elapsed: p.Lifetime - time.Second, want: true},
		{name: "exactly at expiry", elapsed: p.Lifetime, want: false},
		{name: "past expiry", elapsed: p.Lifetime + time.Minute, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := issued.Add(tt.elapsed)
			assert.Equal(t, tt.want, p.ShouldRenew(sess, now))
		})
	}
}

func TestRenewalPolicy_Renew(t *testing.T) {
	p := RenewalPolicy{Lifetime: 7 * 24 * time.Hour, RenewWithin: 24 * time.Hour}
	now := time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)
	sess := Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(30 * time.Minute)}

	renewed := p.Renew(sess, now)

	assert.Equal(t, now.Add(p.Lifetime), renewed.ExpiresAt)
	// Renew returns a copy; the original is untouched.
	assert.Equal(t, now.Add(30*time.Minute), sess.ExpiresAt)
	assert.Equal(t, sess.ID, renewed.ID)
	assert.Equal(t, sess.UserID, renewed.UserID)
}

func TestRenewalPolicy_RenewalIsNotCompounding(t *testing.T) {
	// Repeated accesses outside the window never move the expiry, so a burst of
	// activity right after issuance cannot extend the session.
	p := DefaultRenewalPolicy()
	issued := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	sess := Session{ID: "s1", ExpiresAt: issued.Add(p.Lifetime)}

	for i := range 100 {
		now := issued.Add(time.Duration(i) * time.Minute)
		assert.False(t, p.ShouldRenew(sess, now))
	}
	assert.Equal(t, issued.Add(p.Lifetime), sess.ExpiresAt)
}
