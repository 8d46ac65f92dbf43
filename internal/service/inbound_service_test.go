package service

import (
	"context"
	"testing"
	"time"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/repository"
	"stokgudang/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInboundService(t *testing.T) (InboundService, repository.InboundRepository) {
	t.Helper()
	memory := store.NewMemoryStore()
	repo := repository.NewInboundRepository(memory)
	return NewInboundService(repo), repo
}

func TestInboundCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInboundService(t)

	older := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	_, err := svc.Create(ctx, CreateInboundRequest{
		Code: "A1", Name: "Kopi", Gudang: "Gudang A", Large: 5, Timestamp: older,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInboundRequest{
		Code: "B2", Name: "Teh", Gudang: "Gudang B", Small: 3, Timestamp: newer,
	})
	require.NoError(t, err)

	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first
	assert.Equal(t, "B2", records[0].Code)
	assert.Equal(t, "A1", records[1].Code)
}

func TestInboundCreateDefaultsTimestamp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInboundService(t)

	record, err := svc.Create(ctx, CreateInboundRequest{Code: "A1", Name: "Kopi", Gudang: "Gudang A"})
	require.NoError(t, err)
	assert.False(t, record.Timestamp.IsZero())
}

func TestInboundUpdateOverlaysOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInboundService(t)

	ts := time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)
	_, err := svc.Create(ctx, CreateInboundRequest{
		Code: "A1", Name: "Kopi", Gudang: "Gudang A", Large: 5, Medium: 2, Timestamp: ts, Note: "asli",
	})
	require.NoError(t, err)

	newLarge := model.Quantity(9)
	emptyNote := ""
	updated, err := svc.Update(ctx, UpdateInboundRequest{
		Gudang:    "Gudang A",
		Timestamp: ts,
		Large:     &newLarge,
		Note:      &emptyNote,
	})
	require.NoError(t, err)

	assert.Equal(t, model.Quantity(9), updated.Large)
	// Untouched fields survive
	assert.Equal(t, model.Quantity(2), updated.Medium)
	assert.Equal(t, "Kopi", updated.Name)
	// Pointer fields distinguish "clear" from "leave alone"
	assert.Equal(t, "", updated.Note)
}

func TestInboundUpdateMissingRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInboundService(t)

	_, err := svc.Update(ctx, UpdateInboundRequest{
		Gudang:    "Gudang A",
		Timestamp: time.Date(2025, 5, 3, 8, 0, 0, 0, time.UTC),
	})
	assert.Error(t, err)
}

func TestInboundDeleteByCodeAndTimestamp(t *testing.T) {
	ctx := context.Background()
	svc, repo := newInboundService(t)

	ts := time.Date(2025, 5, 4, 8, 0, 0, 0, time.UTC)
	_, err := svc.Create(ctx, CreateInboundRequest{Code: "A1", Name: "Kopi", Gudang: "Gudang A", Timestamp: ts})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInboundRequest{Code: "A1", Name: "Kopi", Gudang: "Gudang B", Timestamp: ts.Add(time.Hour)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "A1", ts))

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Gudang B", remaining[0].Gudang)

	// Already gone
	assert.Error(t, svc.Delete(ctx, "A1", ts))
}
