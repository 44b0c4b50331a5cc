package console_test

import (
	"context"
	"path/filepath"
	"testing"

	console "github.com/goliatone/go-console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	store := console.NewMemoryTokenStore()

	token, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Write(ctx, "tok-1"))

	token, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.Clear(ctx))

	token, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestBoltTokenStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "session.db")

	store, err := console.OpenBoltTokenStore(path)
	require.NoError(t, err)
	defer store.Close()

	token, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Write(ctx, "tok-1"))

	token, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.Clear(ctx))

	token, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestBoltTokenStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := console.OpenBoltTokenStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Write(ctx, "persisted.token"))
	require.NoError(t, store.Close())

	reopened, err := console.OpenBoltTokenStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	token, err := reopened.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted.token", token)
}

func TestBoltTokenStoreClosedErrors(t *testing.T) {
	var store *console.BoltTokenStore

	_, err := store.Read(context.Background())
	assert.Error(t, err)

	assert.Error(t, store.Write(context.Background(), "tok"))
	assert.Error(t, store.Clear(context.Background()))
	assert.NoError(t, store.Close())
}
