package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobagent/jobagent/config"
	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
)

func TestBuildAuthStackMockMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	stack, err := BuildAuthStack(AuthDeps{
		Auth: config.AuthConfig{
			Mode: config.AuthModeMock,
			DevAuth: config.DevAuthConfig{
				Email: "dev@jobagent.local",
				Role:  "candidate",
			},
		},
		Logger: logger,
	})
	require.NoError(t, err)
	require.NotNil(t, stack)
	assert.NotNil(t, stack.Provider)
	assert.Nil(t, stack.SSO)
	assert.Nil(t, stack.Identities)

	sess, err := stack.Provider.SignIn(t.Context(), "anyone@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "dev@jobagent.local", sess.Email)
	assert.Equal(t, domainauth.RoleCandidate, sess.Role)
}

func TestBuildAuthStackMockModeInvalidRole(t *testing.T) {
	_, err := BuildAuthStack(AuthDeps{
		Auth: config.AuthConfig{
			Mode: config.AuthModeMock,
			DevAuth: config.DevAuthConfig{
				Email: "dev@jobagent.local",
				Role:  "superuser",
			},
		},
	})
	require.Error(t, err)
}

func TestBuildAuthStackRequiresBackingStores(t *testing.T) {
	tests := []struct {
		name string
		mode config.AuthMode
	}{
		{name: "password mode", mode: config.AuthModePassword},
		{name: "sso mode", mode: config.AuthModeSSO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildAuthStack(AuthDeps{
				Auth: config.AuthConfig{
					Mode:                 tt.mode,
					EmailPasswordEnabled: true,
				},
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "requires a database connection")
		})
	}
}

func TestBuildAuthStackUnsupportedMode(t *testing.T) {
	_, err := BuildAuthStack(AuthDeps{
		Auth: config.AuthConfig{Mode: config.AuthMode("ldap")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported auth mode")
}
