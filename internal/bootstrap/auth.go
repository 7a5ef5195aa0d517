package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jobagent/jobagent/config"
	"github.com/jobagent/jobagent/internal/adapters/authroles"
	"github.com/jobagent/jobagent/internal/adapters/devauth"
	"github.com/jobagent/jobagent/internal/adapters/oidc"
	redisadapter "github.com/jobagent/jobagent/internal/adapters/redis"
	"github.com/jobagent/jobagent/internal/data"
	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	"github.com/jobagent/jobagent/internal/ports"
	"github.com/jobagent/jobagent/internal/service"
)

// AuthDeps contains everything needed to assemble an auth provider.
type AuthDeps struct {
	Auth        config.AuthConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// AuthStack is the assembled authentication layer for the configured mode.
// SSO is nil except in sso mode.
type AuthStack struct {
	Provider ports.AuthProvider
	SSO      *service.SSOService
	// Identities is the backing store, exposed for admin tooling. Nil in
	// mock mode, which has no persistent identities.
	Identities ports.IdentityStore
}

// BuildAuthStack creates the auth provider for the configured mode. Unlike
// optional subsystems, a broken auth configuration is a startup failure.
func BuildAuthStack(deps AuthDeps) (*AuthStack, error) {
	switch deps.Auth.Mode {
	case config.AuthModeMock:
		return buildMockAuth(deps)
	case config.AuthModeSSO:
		return buildSSOAuth(deps)
	case config.AuthModePassword:
		return buildPasswordAuth(deps)
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", deps.Auth.Mode)
	}
}

func buildPasswordAuth(deps AuthDeps) (*AuthStack, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("auth mode %q requires a database connection", deps.Auth.Mode)
	}
	if deps.RedisClient == nil {
		return nil, fmt.Errorf("auth mode %q requires a redis connection", deps.Auth.Mode)
	}
	if !deps.Auth.EmailPasswordEnabled {
		return nil, fmt.Errorf("auth mode %q selected but email+password flow is disabled", deps.Auth.Mode)
	}

	identities := data.NewUserRepo(deps.DB)
	svc := service.NewAuthService(service.AuthServiceOptions{
		Identities:  identities,
		Sessions:    redisadapter.NewSessionStore(deps.RedisClient),
		Renewal:     deps.Auth.RenewalPolicy(),
		DefaultRole: domainauth.Role(deps.Auth.DefaultRole),
		BcryptCost:  deps.Auth.BcryptCost,
	})

	return &AuthStack{Provider: svc, Identities: identities}, nil
}

func buildSSOAuth(deps AuthDeps) (*AuthStack, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("auth mode %q requires a database connection", deps.Auth.Mode)
	}
	if deps.RedisClient == nil {
		return nil, fmt.Errorf("auth mode %q requires a redis connection", deps.Auth.Mode)
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     deps.Auth.SSO.ClientID,
		ClientSecret: deps.Auth.SSO.ClientSecret,
		RedirectURL:  deps.Auth.SSO.RedirectURL,
		Scope:        deps.Auth.SSO.Scope,
		DiscoveryURL: deps.Auth.SSO.DiscoveryURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create OIDC provider: %w", err)
	}

	identities := data.NewUserRepo(deps.DB)
	sessions := redisadapter.NewSessionStore(deps.RedisClient)
	renewal := deps.Auth.RenewalPolicy()

	sso := service.NewSSOService(service.SSOServiceOptions{
		Provider:   prov,
		Identities: identities,
		Sessions:   sessions,
		Roles:      authroles.NewStaticMapper(deps.Auth.SSO.AdminGroup),
		Renewal:    renewal,
	})

	// Session reads, renewal, and signout still go through the password
	// service; only the login flow differs.
	svc := service.NewAuthService(service.AuthServiceOptions{
		Identities:  identities,
		Sessions:    sessions,
		Renewal:     renewal,
		DefaultRole: domainauth.Role(deps.Auth.DefaultRole),
		BcryptCost:  deps.Auth.BcryptCost,
	})

	return &AuthStack{Provider: svc, SSO: sso, Identities: identities}, nil
}

func buildMockAuth(deps AuthDeps) (*AuthStack, error) {
	prov, err := devauth.NewProvider(devauth.Config{
		Email: deps.Auth.DevAuth.Email,
		Role:  domainauth.Role(deps.Auth.DevAuth.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("create dev auth provider: %w", err)
	}

	if deps.Logger != nil {
		deps.Logger.Warn("mock auth enabled; every credential pair is accepted",
			"email", deps.Auth.DevAuth.Email,
			"role", deps.Auth.DevAuth.Role,
		)
	}

	return &AuthStack{Provider: prov}, nil
}
