package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, CollectionBarangMasuk, "k1", map[string]any{"code": "A1"}))

	rec, err := s.Get(ctx, CollectionBarangMasuk, "k1")
	require.NoError(t, err)
	assert.Equal(t, "k1", rec.ID)
	assert.JSONEq(t, `{"code":"A1"}`, string(rec.Data))

	_, err = s.Get(ctx, CollectionBarangMasuk, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePutReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, CollectionBarangKeluar, "k1", map[string]any{"ref": "old", "note": "keep?"}))
	require.NoError(t, s.Put(ctx, CollectionBarangKeluar, "k1", map[string]any{"ref": "new"}))

	rec, err := s.Get(ctx, CollectionBarangKeluar, "k1")
	require.NoError(t, err)
	// Full replace, no merge
	assert.JSONEq(t, `{"ref":"new"}`, string(rec.Data))
}

func TestMemoryStoreMergeUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, CollectionMutasi, "run1", map[string]any{"status": "PENDING", "operator": "joko"}))
	require.NoError(t, s.MergeUpsert(ctx, CollectionMutasi, "run1", map[string]any{"status": "APPROVED"}))

	rec, err := s.Get(ctx, CollectionMutasi, "run1")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Data, &doc))
	assert.Equal(t, "APPROVED", doc["status"])
	assert.Equal(t, "joko", doc["operator"])

	// Merge into an absent document creates it
	require.NoError(t, s.MergeUpsert(ctx, CollectionMutasi, "run2", map[string]any{"status": "PENDING"}))
	_, err = s.Get(ctx, CollectionMutasi, "run2")
	assert.NoError(t, err)
}

func TestMemoryStoreListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Put(ctx, CollectionLaporan, id, map[string]any{"id": id}))
	}
	// Re-putting an existing id must not move it
	require.NoError(t, s.Put(ctx, CollectionLaporan, "c", map[string]any{"id": "c", "v": 2}))

	records, err := s.ListAll(ctx, CollectionLaporan)
	require.NoError(t, err)

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestMemoryStoreDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, CollectionNotification, "n1", map[string]any{"status": "PENDING"}))
	require.NoError(t, s.Delete(ctx, CollectionNotification, "n1"))
	_, err := s.Get(ctx, CollectionNotification, "n1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op
	assert.NoError(t, s.Delete(ctx, CollectionNotification, "n1"))

	require.NoError(t, s.Put(ctx, CollectionBarangMasuk, "k", map[string]any{"x": 1}))
	require.NoError(t, s.ClearAll(ctx))
	records, err := s.ListAll(ctx, CollectionBarangMasuk)
	require.NoError(t, err)
	assert.Empty(t, records)
}
