package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
)

func TestSessionContextRoundTrip(t *testing.T) {
	sess := &domainauth.Session{
		ID:     "sess-1",
		UserID: "user-1",
		Email:  "alice@example.com",
		Role:   domainauth.RoleCandidate,
	}

	ctx := SetSessionInContext(context.Background(), sess)

	got, ok := GetUserSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess, got)
	assert.True(t, IsAuthenticated(ctx))
}

func TestSessionContextNilSession(t *testing.T) {
	ctx := SetSessionInContext(context.Background(), nil)

	got, ok := GetUserSessionFromContext(ctx)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Nil(t, GetSessionFromContext(ctx))
	assert.False(t, IsAuthenticated(ctx))
}

func TestSessionContextEmpty(t *testing.T) {
	_, ok := GetUserSessionFromContext(context.Background())
	assert.False(t, ok)
}
