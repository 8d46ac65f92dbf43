package repository

import (
	"context"
	"encoding/json"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/store"
)

type OutboundRepository interface {
	List(ctx context.Context) ([]model.OutboundRecord, error)
	Get(ctx context.Context, id string) (model.OutboundRecord, error)
	Put(ctx context.Context, record model.OutboundRecord) error
	// MergeFields merges only the supplied fields into the stored document.
	// Used by the mutation engine to stamp status without replacing the
	// transaction body.
	MergeFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type outboundRepository struct {
	records store.RecordStore
}

func NewOutboundRepository(records store.RecordStore) OutboundRepository {
	return &outboundRepository{records: records}
}

func (r *outboundRepository) List(ctx context.Context) ([]model.OutboundRecord, error) {
	raw, err := r.records.ListAll(ctx, store.CollectionBarangKeluar)
	if err != nil {
		return nil, err
	}

	records := make([]model.OutboundRecord, 0, len(raw))
	for _, rec := range raw {
		var outbound model.OutboundRecord
		if unmarshalErr := json.Unmarshal(rec.Data, &outbound); unmarshalErr != nil {
			continue
		}
		records = append(records, outbound)
	}
	return records, nil
}

func (r *outboundRepository) Get(ctx context.Context, id string) (model.OutboundRecord, error) {
	rec, err := r.records.Get(ctx, store.CollectionBarangKeluar, id)
	if err != nil {
		return model.OutboundRecord{}, err
	}

	var outbound model.OutboundRecord
	if err := json.Unmarshal(rec.Data, &outbound); err != nil {
		return model.OutboundRecord{}, err
	}
	return outbound, nil
}

func (r *outboundRepository) Put(ctx context.Context, record model.OutboundRecord) error {
	return r.records.Put(ctx, store.CollectionBarangKeluar, record.Key().String(), record)
}

func (r *outboundRepository) MergeFields(ctx context.Context, id string, fields map[string]any) error {
	return r.records.MergeUpsert(ctx, store.CollectionBarangKeluar, id, fields)
}

func (r *outboundRepository) Delete(ctx context.Context, id string) error {
	return r.records.Delete(ctx, store.CollectionBarangKeluar, id)
}
