package resettoken

import (
	"context"
	"testing"
	"time"

	"assetdesk/internal/storage"
	"assetdesk/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func newTestRegistry() (*Registry, *fakeClock, *storage.Adapter) {
	clock := &fakeClock{now: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)}
	adapter := storage.NewAdapter(storage.NewMemoryStore(), zap.NewNop())
	return NewRegistry(adapter, time.Hour, clock.Now), clock, adapter
}

func storedTokens(t *testing.T, adapter *storage.Adapter) []models.ResetToken {
	t.Helper()
	tokens, err := storage.Load[models.ResetToken](context.Background(), adapter, storage.ResetTokens)
	require.NoError(t, err)
	return tokens
}

func TestGenerateSetsExpiry(t *testing.T) {
	registry, clock, _ := newTestRegistry()

	token, err := registry.Generate(context.Background(), "a@b.com")
	require.NoError(t, err)

	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "a@b.com", token.Email)
	assert.Equal(t, clock.now.Add(time.Hour).UnixMilli(), token.ExpiresAt)
}

func TestGenerateInvalidatesEarlierToken(t *testing.T) {
	ctx := context.Background()
	registry, _, adapter := newTestRegistry()

	first, err := registry.Generate(ctx, "a@b.com")
	require.NoError(t, err)
	second, err := registry.Generate(ctx, "a@b.com")
	require.NoError(t, err)

	ok, err := registry.Validate(ctx, first.Token, "a@b.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = registry.Validate(ctx, second.Token, "a@b.com")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Len(t, storedTokens(t, adapter), 1)
}

func TestGenerateKeepsOtherEmails(t *testing.T) {
	ctx := context.Background()
	registry, _, adapter := newTestRegistry()

	_, err := registry.Generate(ctx, "a@b.com")
	require.NoError(t, err)
	_, err = registry.Generate(ctx, "c@d.com")
	require.NoError(t, err)

	assert.Len(t, storedTokens(t, adapter), 2)
}

func TestValidateRequiresMatchingEmail(t *testing.T) {
	ctx := context.Background()
	registry, _, _ := newTestRegistry()

	token, err := registry.Generate(ctx, "a@b.com")
	require.NoError(t, err)

	ok, err := registry.Validate(ctx, token.Token, "other@b.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidatePurgesExpiredToken(t *testing.T) {
	ctx := context.Background()
	registry, clock, adapter := newTestRegistry()

	token, err := registry.Generate(ctx, "a@b.com")
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Hour)
	ok, err := registry.Validate(ctx, token.Token, "a@b.com")
	require.NoError(t, err)
	assert.True(t, ok, "token is still valid at its expiry instant")

	clock.now = clock.now.Add(time.Millisecond)
	ok, err = registry.Validate(ctx, token.Token, "a@b.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, storedTokens(t, adapter))

	ok, err = registry.Validate(ctx, token.Token, "a@b.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	registry, _, adapter := newTestRegistry()

	token, err := registry.Generate(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, registry.Remove(ctx, token.Token))

	assert.Empty(t, storedTokens(t, adapter))
	ok, err := registry.Validate(ctx, token.Token, "a@b.com")
	require.NoError(t, err)
	assert.False(t, ok)
}
