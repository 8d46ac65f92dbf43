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

func inboundFixture(code, name, gudang string, large, medium, small int, ts time.Time) model.InboundRecord {
	return model.InboundRecord{
		Code:      code,
		Name:      name,
		Gudang:    gudang,
		Large:     model.Quantity(large),
		Medium:    model.Quantity(medium),
		Small:     model.Quantity(small),
		Timestamp: ts,
	}
}

func TestAggregateStockNetsInboundAgainstOutbound(t *testing.T) {
	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	inbound := []model.InboundRecord{
		inboundFixture("A1", "Kopi Sachet", "Gudang A", 10, 5, 0, base),
		inboundFixture("A1", "Kopi Sachet", "Gudang B", 3, 0, 2, base.Add(time.Hour)),
		inboundFixture("B2", "Teh Celup", "Gudang A", 1, 1, 1, base.Add(2*time.Hour)),
	}
	outbound := []model.OutboundRecord{
		{
			Reference:  "DR-1",
			GudangAsal: "Gudang A",
			JenisForm:  model.FormDelivery,
			Timestamp:  base.Add(3 * time.Hour),
			Items: []model.OutboundItem{
				{Code: "A1", Name: "Kopi Sachet", Large: 4, Medium: 2, Small: 1},
			},
		},
	}

	rows := AggregateStock(inbound, outbound)
	require.Len(t, rows, 2)

	assert.Equal(t, "A1", rows[0].Code)
	assert.Equal(t, model.Quantity(9), rows[0].Large)
	assert.Equal(t, model.Quantity(3), rows[0].Medium)
	assert.Equal(t, model.Quantity(1), rows[0].Small)

	assert.Equal(t, "B2", rows[1].Code)
	assert.Equal(t, model.Quantity(1), rows[1].Large)
}

func TestAggregateStockSkipsUnknownOutboundCodes(t *testing.T) {
	inbound := []model.InboundRecord{
		inboundFixture("A1", "Kopi", "Gudang A", 5, 0, 0, time.Now()),
	}
	outbound := []model.OutboundRecord{
		{
			Reference:  "DR-9",
			GudangAsal: "Gudang A",
			JenisForm:  model.FormDelivery,
			Items: []model.OutboundItem{
				{Code: "Z9", Name: "Never Received", Large: 100},
				{Code: "A1", Large: 2},
			},
		},
	}

	rows := AggregateStock(inbound, outbound)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].Code)
	assert.Equal(t, model.Quantity(3), rows[0].Large)
}

func TestAggregateStockNeverClampsNegative(t *testing.T) {
	inbound := []model.InboundRecord{
		inboundFixture("A1", "Kopi", "Gudang A", 2, 0, 0, time.Now()),
	}
	outbound := []model.OutboundRecord{
		{
			Reference: "DR-2", GudangAsal: "Gudang A", JenisForm: model.FormDelivery,
			Items: []model.OutboundItem{{Code: "A1", Large: 5}},
		},
	}

	rows := AggregateStock(inbound, outbound)
	require.Len(t, rows, 1)
	assert.Equal(t, model.Quantity(-3), rows[0].Large)
}

func TestAggregateStockTransferIsNetZero(t *testing.T) {
	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	inbound := []model.InboundRecord{
		inboundFixture("A1", "Kopi", "Gudang A", 10, 4, 0, base),
	}
	outbound := []model.OutboundRecord{
		{
			Reference:    "MB-1",
			GudangAsal:   "Gudang A",
			GudangTujuan: "Gudang B",
			JenisForm:    model.FormMutation,
			Timestamp:    base.Add(time.Hour),
			Items:        []model.OutboundItem{{Code: "A1", Large: 4, Medium: 1}},
		},
	}

	// A pure transfer leaves the company-wide total untouched
	rows := AggregateStock(inbound, outbound)
	require.Len(t, rows, 1)
	assert.Equal(t, model.Quantity(10), rows[0].Large)
	assert.Equal(t, model.Quantity(4), rows[0].Medium)

	// The flat table agrees with the breakdown summed over warehouses
	entry, ok := AggregateByWarehouse(inbound, outbound).Get("A1")
	require.True(t, ok)
	var total model.SizeQty
	for _, qty := range entry.Gudang {
		total = total.Add(qty)
	}
	assert.Equal(t, model.SizeQty{Large: rows[0].Large, Medium: rows[0].Medium, Small: rows[0].Small}, total)
}

func TestAggregateByWarehouseTransferConservesTotal(t *testing.T) {
	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	inbound := []model.InboundRecord{
		inboundFixture("A1", "Kopi", "Gudang A", 10, 4, 0, base),
	}
	outbound := []model.OutboundRecord{
		{
			Reference:    "MB-1",
			GudangAsal:   "Gudang A",
			GudangTujuan: "Gudang B",
			JenisForm:    model.FormMutation,
			Timestamp:    base.Add(time.Hour),
			Items:        []model.OutboundItem{{Code: "A1", Large: 6, Medium: 1}},
		},
	}

	entry, ok := AggregateByWarehouse(inbound, outbound).Get("A1")
	require.True(t, ok)

	assert.Equal(t, model.SizeQty{Large: 4, Medium: 3}, entry.Gudang["Gudang A"])
	assert.Equal(t, model.SizeQty{Large: 6, Medium: 1}, entry.Gudang["Gudang B"])

	// The warehouse-agnostic total is unchanged by the transfer
	var total model.SizeQty
	for _, qty := range entry.Gudang {
		total = total.Add(qty)
	}
	assert.Equal(t, model.SizeQty{Large: 10, Medium: 4}, total)
}

func TestAggregateByWarehouseDeliveryDebitsOnly(t *testing.T) {
	inbound := []model.InboundRecord{
		inboundFixture("A1", "Kopi", "Gudang A", 10, 0, 0, time.Now()),
	}
	outbound := []model.OutboundRecord{
		{
			Reference: "DR-1", GudangAsal: "Gudang A", JenisForm: model.FormDelivery,
			Items: []model.OutboundItem{{Code: "A1", Large: 3}},
		},
	}

	entry, ok := AggregateByWarehouse(inbound, outbound).Get("A1")
	require.True(t, ok)
	assert.Equal(t, model.SizeQty{Large: 7}, entry.Gudang["Gudang A"])
	assert.Len(t, entry.Gudang, 1)
}

func TestAggregateByWarehouseDefaultsPrinciple(t *testing.T) {
	inbound := []model.InboundRecord{
		inboundFixture("A1", "Kopi", "Gudang A", 1, 0, 0, time.Now()),
	}

	entry, ok := AggregateByWarehouse(inbound, nil).Get("A1")
	require.True(t, ok)
	assert.Equal(t, "-", entry.Principle)
}

func TestPrinciplesFirstSeenOrder(t *testing.T) {
	ts := time.Now()
	inbound := []model.InboundRecord{
		{Code: "1", Principle: "Mayora", Timestamp: ts},
		{Code: "2", Principle: "", Timestamp: ts},
		{Code: "3", Principle: "Wings", Timestamp: ts},
		{Code: "4", Principle: "Mayora", Timestamp: ts},
	}
	assert.Equal(t, []string{"Mayora", "-", "Wings"}, Principles(inbound))
}

func TestStockServiceReadsFreshState(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemoryStore()
	inboundRepo := repository.NewInboundRepository(memory)
	outboundRepo := repository.NewOutboundRepository(memory)
	svc := NewStockService(inboundRepo, outboundRepo)

	require.NoError(t, inboundRepo.Put(ctx, inboundFixture("A1", "Kopi", "Gudang A", 5, 0, 0, time.Now())))

	rows, err := svc.GetCurrentStock(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.Quantity(5), rows[0].Large)

	// A later write is visible on the next call; nothing is cached
	require.NoError(t, outboundRepo.Put(ctx, model.OutboundRecord{
		Reference: "DR-1", GudangAsal: "Gudang A", JenisForm: model.FormDelivery,
		Timestamp: time.Now(),
		Items:     []model.OutboundItem{{Code: "A1", Large: 2}},
	}))

	rows, err = svc.GetCurrentStock(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.Quantity(3), rows[0].Large)
}

func TestStockServiceBreakdownPrincipleFilter(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemoryStore()
	inboundRepo := repository.NewInboundRepository(memory)
	svc := NewStockService(inboundRepo, repository.NewOutboundRepository(memory))

	a := inboundFixture("A1", "Kopi", "Gudang A", 1, 0, 0, time.Now())
	a.Principle = "Mayora"
	b := inboundFixture("B2", "Teh", "Gudang B", 1, 0, 0, time.Now().Add(time.Second))
	b.Principle = "Wings"
	require.NoError(t, inboundRepo.Put(ctx, a))
	require.NoError(t, inboundRepo.Put(ctx, b))

	entries, err := svc.GetWarehouseBreakdown(ctx, "Wings")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "B2", entries[0].Code)

	all, err := svc.GetWarehouseBreakdown(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
