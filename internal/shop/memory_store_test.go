package shop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/locale"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMemoryStore(t *testing.T, ttl time.Duration) *MemoryStore {
	store := NewMemoryStore(ttl)
	t.Cleanup(func() { store.Close() })
	return store
}

func sessionWithLine(id string) *Session {
	s := NewSession(id, locale.English, time.Now())
	s.Cart.Lines = []domain.CartLine{{
		Product:  domain.Product{ID: 1, Name: "Premium Wireless Headphones", Price: decimal.RequireFromString("299.99")},
		Quantity: 2,
	}}
	s.Cart.Visible = true
	return s
}

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	store := setupMemoryStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sessionWithLine("s1")))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", loaded.ID)
	require.Len(t, loaded.Cart.Lines, 1)
	assert.Equal(t, 2, loaded.Cart.Lines[0].Quantity)
	assert.True(t, loaded.Cart.Lines[0].Product.Price.Equal(decimal.RequireFromString("299.99")))
	assert.True(t, loaded.Cart.Visible)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := setupMemoryStore(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sessionWithLine("s1")))

	first, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	first.Cart.Lines[0].Quantity = 99

	second, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Cart.Lines[0].Quantity)
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := setupMemoryStore(t, time.Minute)

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := setupMemoryStore(t, 10*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sessionWithLine("s1")))

	time.Sleep(20 * time.Millisecond)
	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	store.expireSessions(time.Now())
	assert.Empty(t, store.sessions)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := setupMemoryStore(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sessionWithLine("s1")))

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// deleting again is fine
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestMemoryStore_UpdateCreatesAndModifies(t *testing.T) {
	store := setupMemoryStore(t, time.Minute)
	ctx := context.Background()

	created, err := store.Update(ctx, "s1", func(current *Session) (*Session, error) {
		assert.Nil(t, current)
		return NewSession("s1", locale.English, time.Now()), nil
	})
	require.NoError(t, err)
	assert.Equal(t, ViewGrid, created.ViewMode)

	updated, err := store.Update(ctx, "s1", func(current *Session) (*Session, error) {
		require.NotNil(t, current)
		current.ViewMode = ViewList
		return current, nil
	})
	require.NoError(t, err)
	assert.Equal(t, ViewList, updated.ViewMode)

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, ViewList, loaded.ViewMode)
}

func TestMemoryStore_UpdateErrorSavesNothing(t *testing.T) {
	store := setupMemoryStore(t, time.Minute)
	ctx := context.Background()
	errRejected := errors.New("rejected")

	_, err := store.Update(ctx, "s1", func(*Session) (*Session, error) {
		return nil, errRejected
	})
	assert.ErrorIs(t, err, errRejected)

	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	require.NoError(t, store.Close())
	assert.NotPanics(t, func() { _ = store.Close() })
}
