package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	"golang.org/x/crypto/bcrypt"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModePassword uses email+password credential login (the default).
	AuthModePassword AuthMode = "password"
	// AuthModeSSO uses OIDC single sign-on for authentication.
	AuthModeSSO AuthMode = "sso"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "sso", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, sso, mock)", v)
	}
}

// SSOConfig contains OIDC single sign-on configuration, used when Mode=sso.
type SSOConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/sso/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`

	// AdminGroup is the IdP group whose members get the admin role.
	AdminGroup string `env:"ADMIN_GROUP"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Email string `env:"EMAIL" envDefault:"dev@jobagent.local"`
	Role  string `env:"ROLE"  envDefault:"candidate"`
}

// AuthConfig groups all authentication-related configuration.
//
// The session fields implement the sliding-expiry contract: a session is valid
// for SessionLifetime total, and any access with less than SessionRenewWithin
// remaining extends it by a full lifetime from that point.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// Origin is the canonical application origin (e.g. "https://jobagent.example.com").
	// Required: an empty trusted-origin list must never be interpreted as allow-all.
	Origin string `env:"APP_ORIGIN,required"`

	// ExtraOrigins is an optional comma-separated list of additional trusted
	// origins for cross-origin credential requests. Entries are trimmed and
	// empty segments dropped by TrustedOrigins.
	ExtraOrigins []string `env:"AUTH_TRUSTED_ORIGINS" envSeparator:","`

	// EmailPasswordEnabled toggles the email+password credential flow.
	EmailPasswordEnabled bool `env:"AUTH_EMAIL_PASSWORD" envDefault:"true"`

	// SessionLifetime is the total validity of a freshly issued session.
	SessionLifetime time.Duration `env:"AUTH_SESSION_LIFETIME" envDefault:"168h"`

	// SessionRenewWithin is the trailing renewal window.
	SessionRenewWithin time.Duration `env:"AUTH_SESSION_RENEW_WITHIN" envDefault:"24h"`

	// DefaultRole is the role stored for every signup. The role attribute is
	// not client-settable: values supplied at registration are ignored.
	DefaultRole string `env:"AUTH_DEFAULT_ROLE" envDefault:"candidate"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"12"`

	// SSO configuration (used when Mode=sso).
	SSO SSOConfig `envPrefix:"SSO_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.BcryptCost < bcrypt.DefaultCost {
		a.BcryptCost = bcrypt.DefaultCost
	}
	if a.BcryptCost > 15 {
		a.BcryptCost = 15
	}
	if a.SessionLifetime <= 0 {
		a.SessionLifetime = domainauth.DefaultSessionLifetime
	}
	if a.SessionRenewWithin <= 0 {
		a.SessionRenewWithin = domainauth.DefaultRenewalWindow
	}
}

// Validate checks invariants that must fail startup.
func (a *AuthConfig) Validate() error {
	if strings.TrimSpace(a.Origin) == "" {
		return errors.New("auth: APP_ORIGIN is required")
	}
	if a.SessionRenewWithin >= a.SessionLifetime {
		return fmt.Errorf("auth: renewal window (%s) must be shorter than session lifetime (%s)",
			a.SessionRenewWithin, a.SessionLifetime)
	}
	if !domainauth.Role(a.DefaultRole).Valid() {
		return fmt.Errorf("auth: invalid default role %q", a.DefaultRole)
	}
	if a.Mode == AuthModeSSO {
		if a.SSO.ClientID == "" || a.SSO.ClientSecret == "" || a.SSO.DiscoveryURL == "" {
			return errors.New("auth: AUTH_MODE=sso requires SSO_CLIENT_ID, SSO_CLIENT_SECRET, and SSO_DISCOVERY_URL")
		}
	}
	return nil
}

// TrustedOrigins assembles the cross-origin allow-list: the primary origin
// plus every non-empty trimmed supplementary entry, deduplicated in order.
// The result is never empty because Origin is required.
func (a *AuthConfig) TrustedOrigins() []string {
	origins := make([]string, 0, len(a.ExtraOrigins)+1)
	seen := make(map[string]struct{}, len(a.ExtraOrigins)+1)

	add := func(raw string) {
		o := strings.TrimSuffix(strings.TrimSpace(raw), "/")
		if o == "" {
			return
		}
		if _, dup := seen[o]; dup {
			return
		}
		seen[o] = struct{}{}
		origins = append(origins, o)
	}

	add(a.Origin)
	for _, o := range a.ExtraOrigins {
		add(o)
	}
	return origins
}

// RenewalPolicy returns the domain renewal policy configured here.
func (a *AuthConfig) RenewalPolicy() domainauth.RenewalPolicy {
	return domainauth.RenewalPolicy{
		Lifetime:    a.SessionLifetime,
		RenewWithin: a.SessionRenewWithin,
	}
}
