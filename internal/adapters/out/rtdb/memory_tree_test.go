package rtdb

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTree_SetGetDelete(t *testing.T) {
	tree := NewMemoryTree()
	ctx := context.Background()

	require.NoError(t, tree.Set(ctx, "a/b", map[string]any{"x": 1}))

	var got map[string]int
	ok, err := tree.Get(ctx, "a/b", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, got["x"])

	require.NoError(t, tree.Delete(ctx, "a/b"))
	ok, err = tree.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, ok, "empty parents are pruned")
}

func TestMemoryTree_EmptyValuesRemoveNode(t *testing.T) {
	tree := NewMemoryTree()
	ctx := context.Background()

	require.NoError(t, tree.Set(ctx, "carts/u1", map[string]any{"items": []int{1}}))
	require.NoError(t, tree.Set(ctx, "carts/u1", map[string]any{"items": []int{}}))

	var raw json.RawMessage
	ok, err := tree.Get(ctx, "carts/u1", &raw)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryTree_ArraysRoundTrip(t *testing.T) {
	tree := NewMemoryTree()
	ctx := context.Background()

	require.NoError(t, tree.Set(ctx, "list", []string{"a", "b"}))
	var got []string
	ok, err := tree.Get(ctx, "list", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestMemoryTree_PushKeysAreOrdered(t *testing.T) {
	tree := NewMemoryTree()
	ctx := context.Background()

	k1, err := tree.Push(ctx, "items", map[string]any{"n": 1})
	require.NoError(t, err)
	k2, err := tree.Push(ctx, "items", map[string]any{"n": 2})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
	assert.Less(t, k1, k2)
}

func TestMemoryTree_Update(t *testing.T) {
	tree := NewMemoryTree()
	ctx := context.Background()
	require.NoError(t, tree.Set(ctx, "p/keep", "k"))
	require.NoError(t, tree.Update(ctx, "p", map[string]any{"a": "1", "b": "2"}))

	var got map[string]string
	_, err := tree.Get(ctx, "p", &got)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"keep": "k", "a": "1", "b": "2"}, got)
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, validatePath("carts/u1"))
	assert.Error(t, validatePath(""))
	assert.Error(t, validatePath("carts//u1"))
	assert.Error(t, validatePath("carts/a.b"))
	assert.Error(t, validatePath("products/$x"))
}

func TestDecodeKeyed_ArrayWithHoles(t *testing.T) {
	raw := json.RawMessage(`[null, {"name":"one"}, {"name":"two"}]`)
	got, err := decodeKeyed[productRecord](raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].key)
	assert.Equal(t, "two", got[1].value.Name)
}

func TestDecodeKeyed_ObjectSortedByKey(t *testing.T) {
	raw := json.RawMessage(`{"10":{"name":"ten"},"2":{"name":"two"},"b":{"name":"b"},"a":{"name":"a"}}`)
	got, err := decodeKeyed[productRecord](raw)
	require.NoError(t, err)
	keys := make([]string, 0, len(got))
	for _, k := range got {
		keys = append(keys, k.key)
	}
	assert.Equal(t, []string{"2", "10", "a", "b"}, keys)
}
