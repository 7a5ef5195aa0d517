package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	"github.com/jobagent/jobagent/internal/ports"
	"github.com/jobagent/jobagent/internal/testutil"
)

func testSession(id string, ttl time.Duration) domainauth.Session {
	now := time.Now()
	return domainauth.Session{
		ID:        id,
		UserID:    "user-123",
		Email:     "candidate@example.com",
		Role:      domainauth.RoleCandidate,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	sess := testSession("test-session-1", 30*time.Minute)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Email, got.Email)
	assert.Equal(t, sess.Role, got.Role)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_GetEmptyID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("test-session-delete", 30*time.Minute)))
	_, err := store.Get(ctx, "test-session-delete")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err = store.Get(ctx, "test-session-delete")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_DeleteUnknownIsNoOp(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	assert.NoError(t, store.Delete(context.Background(), "never-existed"))
}

func TestSessionStore_TTLExpiration(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("test-session-ttl", 100*time.Millisecond)))

	time.Sleep(200 * time.Millisecond)

	_, err := store.Get(ctx, "test-session-ttl")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_SaveRenewedSessionExtendsTTL(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	sess := testSession("test-session-renew", time.Minute)
	require.NoError(t, store.Save(ctx, sess))

	sess.ExpiresAt = time.Now().Add(time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	ttl := client.TTL(ctx, "session:test-session-renew").Val()
	assert.Greater(t, ttl, 50*time.Minute)
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	err := store.Save(context.Background(), testSession("", 30*time.Minute))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")
}

func TestSessionStore_SaveExpiredSession(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	err := store.Save(context.Background(), testSession("expired-session", -time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session is expired")
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "jobagent-test:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("prefix-test", 30*time.Minute)))

	exists := client.Exists(ctx, "jobagent-test:prefix-test").Val()
	assert.Equal(t, int64(1), exists)

	got, err := store.Get(ctx, "prefix-test")
	require.NoError(t, err)
	assert.Equal(t, "prefix-test", got.ID)
}
