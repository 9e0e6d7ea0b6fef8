package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolibana/backend/internal/infrastructure/auth"
)

func TestInMemoryTokenBlacklist_SingleToken(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-logout-1", time.Hour))

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-logout-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsBlacklisted(ctx, "jti-still-valid")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_ExpiredEntryIsDropped(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-short-lived", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	// Once the token would have expired anyway, the entry is gone.
	revoked, err := blacklist.IsBlacklisted(ctx, "jti-short-lived")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_UserInvalidation(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	issuedBefore := time.Now().Add(-time.Minute)

	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-amadou", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalidated, "no invalidation recorded yet")

	require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-amadou", time.Hour))

	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-amadou", issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalidated, "token issued before the instant is rejected")

	issuedAfter := time.Now().Add(time.Minute)
	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-amadou", issuedAfter)
	require.NoError(t, err)
	assert.False(t, invalidated, "a fresh token survives the invalidation")

	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-fatou", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalidated, "other users are untouched")
}

func TestInMemoryTokenBlacklist_ManyTokens(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		jti := fmt.Sprintf("jti-session-%d", i)
		require.NoError(t, blacklist.AddToBlacklist(ctx, jti, time.Hour))
	}

	for i := 0; i < 25; i++ {
		revoked, err := blacklist.IsBlacklisted(ctx, fmt.Sprintf("jti-session-%d", i))
		require.NoError(t, err)
		assert.True(t, revoked)
	}

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-session-99")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenBlacklistImplementations(t *testing.T) {
	var _ auth.TokenBlacklist = (*auth.InMemoryTokenBlacklist)(nil)
	var _ auth.TokenBlacklist = (*auth.RedisTokenBlacklist)(nil)
}
