package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	apperrors "github.com/jobagent/jobagent/internal/errors"
	"github.com/jobagent/jobagent/internal/ports"
)

// SSOServiceOptions groups dependencies for SSOService.
type SSOServiceOptions struct {
	Provider   ports.SSOProvider
	Identities ports.IdentityStore
	Sessions   ports.SessionStore
	Roles      ports.RoleMapper
	Renewal    domainauth.RenewalPolicy
	Now        func() time.Time
}

// SSOService orchestrates the OIDC login flow: redirect to the IdP, exchange
// the callback code for claims, provision the identity on first sign-in, and
// issue a session. Role mapping applies only at provisioning time; afterwards
// the stored role is authoritative (elevation goes through the admin CLI).
type SSOService struct {
	provider   ports.SSOProvider
	identities ports.IdentityStore
	sessions   ports.SessionStore
	roles      ports.RoleMapper
	renewal    domainauth.RenewalPolicy
	now        func() time.Time
}

// NewSSOService constructs a new SSOService.
func NewSSOService(opts SSOServiceOptions) *SSOService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	renewal := opts.Renewal
	if renewal.Lifetime == 0 {
		renewal = domainauth.DefaultRenewalPolicy()
	}
	return &SSOService{
		provider:   opts.Provider,
		identities: opts.Identities,
		sessions:   opts.Sessions,
		roles:      opts.Roles,
		renewal:    renewal,
		now:        now,
	}
}

// BeginLoginResult contains the result of beginning an SSO login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates the flow and returns the provider auth URL with state and nonce.
func (s *SSOService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin sso flow: %w", err)
	}

	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing an SSO login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin exchanges the authorization code for claims, resolves or
// provisions the identity, and issues a session.
func (s *SSOService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (domainauth.Session, error) {
	if input.Code == "" {
		return domainauth.Session{}, errors.New("authorization code is required")
	}
	if input.State == "" {
		return domainauth.Session{}, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return domainauth.Session{}, errors.New("nonce parameter is required")
	}

	claims, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	identity, err := s.resolveIdentity(ctx, claims)
	if err != nil {
		return domainauth.Session{}, err
	}

	now := s.now()
	sess := domainauth.Session{
		ID:        uuid.New().String(),
		UserID:    identity.ID,
		Email:     identity.Email,
		Role:      identity.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.renewal.Lifetime),
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return domainauth.Session{}, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "save session")
	}
	return sess, nil
}

// resolveIdentity finds the stored identity for the claims, provisioning a new
// record on first sign-in. Provisioned accounts carry no password credential.
func (s *SSOService) resolveIdentity(ctx context.Context, claims ports.SSOIdentity) (domainauth.Identity, error) {
	email, err := normalizeEmail(claims.Email)
	if err != nil {
		return domainauth.Identity{}, err
	}

	identity, err := s.identities.GetByEmail(ctx, email)
	if err == nil {
		return identity, nil
	}
	mapped := apperrors.MapDBError(err)
	if !apperrors.IsNotFound(mapped) {
		return domainauth.Identity{}, mapped
	}

	identity, err = s.identities.Create(ctx, ports.NewIdentity{
		Email: email,
		Role:  s.roles.Map(claims.Groups),
	})
	if err != nil {
		return domainauth.Identity{}, apperrors.MapDBError(err)
	}
	return identity, nil
}
