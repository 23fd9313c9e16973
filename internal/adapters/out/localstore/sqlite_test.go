package localstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/adapters/out/localstore"
	identitydom "storefront/internal/domain/identity"
)

func openTemp(t *testing.T) (*localstore.SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "local.db")
	s, err := localstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s, _ := openTemp(t)

	v, ok, err := s.Get(context.Background(), identitydom.LocalRecordKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSQLiteStore_SetOverwriteRemove(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "user", `{"uid":"a"}`))
	require.NoError(t, s.Set(ctx, "user", `{"uid":"b"}`))

	v, ok, err := s.Get(ctx, "user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"uid":"b"}`, v)

	require.NoError(t, s.Remove(ctx, "user"))
	require.NoError(t, s.Remove(ctx, "user"))

	_, ok, err = s.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	ctx := context.Background()

	s, err := localstore.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "user", "persisted"))
	require.NoError(t, s.Close())

	// 再オープン時はマイグレーションが ErrNoChange になる
	s, err = localstore.Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", v)
}

func TestOpen_RejectsEmptyPath(t *testing.T) {
	_, err := localstore.Open("  ")
	require.Error(t, err)
}
