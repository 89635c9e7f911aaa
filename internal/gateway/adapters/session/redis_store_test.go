package session_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfront/internal/gateway/adapters/cache"
	"stayfront/internal/gateway/adapters/session"
	"stayfront/internal/gateway/app/dto"
	"stayfront/internal/gateway/config"
	cachePorts "stayfront/internal/gateway/ports/cache"
	sessionPorts "stayfront/internal/gateway/ports/session"
)

func testCache(t *testing.T) (*miniredis.Miniredis, cachePorts.Cache) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		PoolSize:       5,
		DefaultTTL:     time.Minute,
	}

	redisCache, err := cache.NewRedisCache(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = redisCache.Close()
	})

	return s, redisCache
}

func testStore(t *testing.T) (*miniredis.Miniredis, sessionPorts.Store) {
	t.Helper()

	s, redisCache := testCache(t)
	return s, session.NewRedisStore(redisCache, time.Hour)
}

func testSession() *sessionPorts.Session {
	return &sessionPorts.Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User: &dto.UserProfile{
			ID:    "user-1",
			Email: "guest@example.com",
			Role:  dto.RoleUser,
		},
	}
}

func TestRedisStore_SetGetRoundtrip(t *testing.T) {
	_, store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", testSession()))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "access-1", got.AccessToken)
	assert.Equal(t, "refresh-1", got.RefreshToken)
	require.NotNil(t, got.User)
	assert.Equal(t, "user-1", got.User.ID)
}

func TestRedisStore_GetMissingSession(t *testing.T) {
	_, store := testStore(t)

	got, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_SetOverwritesWholeSession(t *testing.T) {
	_, store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", testSession()))

	rotated := testSession()
	rotated.AccessToken = "access-2"
	rotated.RefreshToken = "refresh-2"
	require.NoError(t, store.Set(ctx, "sid-1", rotated))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "access-2", got.AccessToken)
	assert.Equal(t, "refresh-2", got.RefreshToken)
}

func TestRedisStore_ClearIsIdempotent(t *testing.T) {
	_, store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", testSession()))
	require.NoError(t, store.Clear(ctx, "sid-1"))
	require.NoError(t, store.Clear(ctx, "sid-1"), "second clear must not fail")

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_CorruptSessionTreatedAsMissing(t *testing.T) {
	s, store := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(session.KeyPrefix+"sid-1", "{not json"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, store.IsAuthenticated(ctx, "sid-1"))
}

func TestRedisStore_IsAuthenticated(t *testing.T) {
	_, store := testStore(t)
	ctx := context.Background()

	assert.False(t, store.IsAuthenticated(ctx, "sid-1"), "no session")

	tokenOnly := testSession()
	tokenOnly.User = nil
	require.NoError(t, store.Set(ctx, "sid-1", tokenOnly))
	assert.False(t, store.IsAuthenticated(ctx, "sid-1"), "token without profile is not authenticated")

	profileOnly := testSession()
	profileOnly.AccessToken = ""
	require.NoError(t, store.Set(ctx, "sid-2", profileOnly))
	assert.False(t, store.IsAuthenticated(ctx, "sid-2"), "profile without token is not authenticated")

	require.NoError(t, store.Set(ctx, "sid-3", testSession()))
	assert.True(t, store.IsAuthenticated(ctx, "sid-3"))
}

func TestRedisStore_UnavailableBackendDegrades(t *testing.T) {
	s, store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", testSession()))
	s.Close()

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err, "backend failure must not surface on the read path")
	assert.Nil(t, got)

	assert.NoError(t, store.Set(ctx, "sid-1", testSession()), "write becomes a no-op")
	assert.NoError(t, store.Clear(ctx, "sid-1"))
	assert.False(t, store.IsAuthenticated(ctx, "sid-1"))
}

func TestTokenSource_ReadsFreshToken(t *testing.T) {
	_, store := testStore(t)
	source := session.NewTokenSource(store)

	ctx := sessionPorts.NewContext(context.Background(), "sid-1")
	assert.Empty(t, source.AccessToken(ctx), "no session yet")

	require.NoError(t, store.Set(ctx, "sid-1", testSession()))
	assert.Equal(t, "access-1", source.AccessToken(ctx))

	rotated := testSession()
	rotated.AccessToken = "access-2"
	require.NoError(t, store.Set(ctx, "sid-1", rotated))
	assert.Equal(t, "access-2", source.AccessToken(ctx), "token must be re-read on every call")

	require.NoError(t, store.Clear(ctx, "sid-1"))
	assert.Empty(t, source.AccessToken(ctx))
}

func TestTokenSource_NoSessionID(t *testing.T) {
	_, store := testStore(t)
	source := session.NewTokenSource(store)

	assert.Empty(t, source.AccessToken(context.Background()))
}
