package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/repository"
	"stokgudang/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newReportFixture(t *testing.T) (ReportService, repository.InboundRepository) {
	t.Helper()
	memory := store.NewMemoryStore()
	inboundRepo := repository.NewInboundRepository(memory)
	stock := NewStockService(inboundRepo, repository.NewOutboundRepository(memory))
	return NewReportService(stock, repository.NewReportRepository(memory)), inboundRepo
}

func TestBuildReportRowsSumsAcrossWarehouses(t *testing.T) {
	generatedAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	entries := []WarehouseStock{
		{
			Code: "A1", Name: "Kopi", Principle: "Mayora",
			Gudang: map[string]model.SizeQty{
				"Gudang A": {Large: 3, Medium: 1},
				"Gudang B": {Large: 2, Small: 5},
			},
		},
		{
			Code: "B2", Name: "Teh", Principle: "-",
			Gudang: map[string]model.SizeQty{"Gudang A": {Small: 1}},
		},
	}

	rows := BuildReportRows(entries, generatedAt)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].No)
	assert.Equal(t, "A1", rows[0].Code)
	assert.Equal(t, model.Quantity(5), rows[0].Large)
	assert.Equal(t, model.Quantity(1), rows[0].Medium)
	assert.Equal(t, model.Quantity(5), rows[0].Small)
	assert.True(t, rows[0].Timestamp.Equal(generatedAt))

	assert.Equal(t, 2, rows[1].No)
	assert.Equal(t, "B2", rows[1].Code)
}

func TestReportGenerateAndList(t *testing.T) {
	ctx := context.Background()
	svc, inboundRepo := newReportFixture(t)

	require.NoError(t, inboundRepo.Put(ctx, model.InboundRecord{
		Code: "A1", Name: "Kopi", Gudang: "Gudang A", Principle: "Mayora",
		Large: 4, Timestamp: time.Now(),
	}))

	report, err := svc.Generate(ctx, model.Actor{RoleName: "PIC Gudang A"}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "PIC Gudang A", report.CreatedBy)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, model.Quantity(4), report.Rows[0].Large)

	reports, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.ID, reports[0].ID)

	fetched, err := svc.Get(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, fetched.ID)

	require.NoError(t, svc.Delete(ctx, report.ID))
	_, err = svc.Get(ctx, report.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReportExportXLSX(t *testing.T) {
	ctx := context.Background()
	svc, inboundRepo := newReportFixture(t)

	require.NoError(t, inboundRepo.Put(ctx, model.InboundRecord{
		Code: "A1", Name: "Kopi", Gudang: "Gudang A", Principle: "Mayora",
		Large: 4, Medium: 2, Timestamp: time.Now(),
	}))

	report, err := svc.Generate(ctx, model.Actor{Username: "pic-a"}, "")
	require.NoError(t, err)

	data, err := svc.ExportXLSX(ctx, report.ID)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "No", header)

	code, err := f.GetCellValue("Sheet1", "C2")
	require.NoError(t, err)
	assert.Equal(t, "A1", code)
}

func TestReportExportMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newReportFixture(t)

	_, err := svc.ExportXLSX(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
