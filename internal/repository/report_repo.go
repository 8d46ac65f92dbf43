package repository

import (
	"context"
	"encoding/json"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/store"
)

type ReportRepository interface {
	Put(ctx context.Context, report model.StockReport) error
	Get(ctx context.Context, id string) (model.StockReport, error)
	List(ctx context.Context) ([]model.StockReport, error)
	Delete(ctx context.Context, id string) error
}

type reportRepository struct {
	records store.RecordStore
}

func NewReportRepository(records store.RecordStore) ReportRepository {
	return &reportRepository{records: records}
}

func (r *reportRepository) Put(ctx context.Context, report model.StockReport) error {
	return r.records.Put(ctx, store.CollectionLaporan, report.ID, report)
}

func (r *reportRepository) Get(ctx context.Context, id string) (model.StockReport, error) {
	rec, err := r.records.Get(ctx, store.CollectionLaporan, id)
	if err != nil {
		return model.StockReport{}, err
	}

	var report model.StockReport
	if err := json.Unmarshal(rec.Data, &report); err != nil {
		return model.StockReport{}, err
	}
	return report, nil
}

func (r *reportRepository) List(ctx context.Context) ([]model.StockReport, error) {
	raw, err := r.records.ListAll(ctx, store.CollectionLaporan)
	if err != nil {
		return nil, err
	}

	reports := make([]model.StockReport, 0, len(raw))
	for _, rec := range raw {
		var report model.StockReport
		if unmarshalErr := json.Unmarshal(rec.Data, &report); unmarshalErr != nil {
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	return r.records.Delete(ctx, store.CollectionLaporan, id)
}
