package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ReportService builds brand-grouped stock summaries from the per-warehouse
// breakdown and keeps them for later export.
type ReportService interface {
	Generate(ctx context.Context, actor model.Actor, principle string) (model.StockReport, error)
	List(ctx context.Context) ([]model.StockReport, error)
	Get(ctx context.Context, id string) (model.StockReport, error)
	Delete(ctx context.Context, id string) error
	// ExportXLSX renders a stored report as a spreadsheet.
	ExportXLSX(ctx context.Context, id string) ([]byte, error)
}

type reportService struct {
	stock StockService
	repo  repository.ReportRepository
	now   func() time.Time
}

func NewReportService(stock StockService, repo repository.ReportRepository) ReportService {
	return &reportService{stock: stock, repo: repo, now: time.Now}
}

// BuildReportRows flattens breakdown entries into report rows, summing each
// item's counters across warehouses. Row order follows the breakdown's
// first-seen code order.
func BuildReportRows(entries []WarehouseStock, generatedAt time.Time) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(entries))
	for i, entry := range entries {
		var total model.SizeQty
		for _, qty := range entry.Gudang {
			total = total.Add(qty)
		}
		rows = append(rows, model.ReportRow{
			No:        i + 1,
			Principle: entry.Principle,
			Code:      entry.Code,
			Name:      entry.Name,
			Large:     total.Large,
			Medium:    total.Medium,
			Small:     total.Small,
			Timestamp: generatedAt,
		})
	}
	return rows
}

func (s *reportService) Generate(ctx context.Context, actor model.Actor, principle string) (model.StockReport, error) {
	entries, err := s.stock.GetWarehouseBreakdown(ctx, principle)
	if err != nil {
		return model.StockReport{}, fmt.Errorf("failed to aggregate stock: %w", err)
	}

	generatedAt := s.now()
	report := model.StockReport{
		ID:        uuid.NewString(),
		Principle: principle,
		CreatedAt: generatedAt,
		CreatedBy: actor.DisplayName(),
		Rows:      BuildReportRows(entries, generatedAt),
	}

	if err := s.repo.Put(ctx, report); err != nil {
		return model.StockReport{}, fmt.Errorf("failed to save report: %w", err)
	}
	return report, nil
}

func (s *reportService) List(ctx context.Context) ([]model.StockReport, error) {
	return s.repo.List(ctx)
}

func (s *reportService) Get(ctx context.Context, id string) (model.StockReport, error) {
	return s.repo.Get(ctx, id)
}

func (s *reportService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *reportService) ExportXLSX(ctx context.Context, id string) ([]byte, error) {
	report, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}

	// Add headers
	headers := []string{"No", "Principle", "Kode", "Nama Barang", "L", "M", "S", "Tanggal"}
	for i, h := range headers {
		cell, cellErr := excelize.CoordinatesToCellName(i+1, 1)
		if cellErr != nil {
			return nil, cellErr
		}
		f.SetCellValue(sheet, cell, h)
	}

	// Add data
	for rowIdx, row := range report.Rows {
		values := []any{
			row.No,
			row.Principle,
			row.Code,
			row.Name,
			row.Large.Int(),
			row.Medium.Int(),
			row.Small.Int(),
			row.Timestamp.Format("02-01-2006 15:04"),
		}
		for colIdx, v := range values {
			cell, cellErr := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if cellErr != nil {
				return nil, cellErr
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
