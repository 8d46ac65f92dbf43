package repository

import (
	"context"
	"encoding/json"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/store"
)

type InboundRepository interface {
	List(ctx context.Context) ([]model.InboundRecord, error)
	Get(ctx context.Context, key model.InboundKey) (model.InboundRecord, error)
	Put(ctx context.Context, record model.InboundRecord) error
	Delete(ctx context.Context, key model.InboundKey) error
}

type inboundRepository struct {
	records store.RecordStore
}

func NewInboundRepository(records store.RecordStore) InboundRepository {
	return &inboundRepository{records: records}
}

func (r *inboundRepository) List(ctx context.Context) ([]model.InboundRecord, error) {
	raw, err := r.records.ListAll(ctx, store.CollectionBarangMasuk)
	if err != nil {
		return nil, err
	}

	records := make([]model.InboundRecord, 0, len(raw))
	for _, rec := range raw {
		var inbound model.InboundRecord
		// A document that fails to decode entirely is skipped, matching the
		// permissive stance for field-level garbage.
		if unmarshalErr := json.Unmarshal(rec.Data, &inbound); unmarshalErr != nil {
			continue
		}
		records = append(records, inbound)
	}
	return records, nil
}

func (r *inboundRepository) Get(ctx context.Context, key model.InboundKey) (model.InboundRecord, error) {
	rec, err := r.records.Get(ctx, store.CollectionBarangMasuk, key.String())
	if err != nil {
		return model.InboundRecord{}, err
	}

	var inbound model.InboundRecord
	if err := json.Unmarshal(rec.Data, &inbound); err != nil {
		return model.InboundRecord{}, err
	}
	return inbound, nil
}

func (r *inboundRepository) Put(ctx context.Context, record model.InboundRecord) error {
	return r.records.Put(ctx, store.CollectionBarangMasuk, record.Key().String(), record)
}

func (r *inboundRepository) Delete(ctx context.Context, key model.InboundKey) error {
	return r.records.Delete(ctx, store.CollectionBarangMasuk, key.String())
}
