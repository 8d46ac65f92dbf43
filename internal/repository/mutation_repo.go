package repository

import (
	"context"
	"encoding/json"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/store"
)

// MutationRepository covers the three collections the mutation engine owns:
// the request documents (source of truth), the per-destination inbox mirrors
// and the status-only notifications.
type MutationRepository interface {
	PutRequest(ctx context.Context, request model.MutationRequest) error
	GetRequest(ctx context.Context, runID string) (model.MutationRequest, error)
	ListRequests(ctx context.Context) ([]model.MutationRequest, error)
	MergeRequest(ctx context.Context, runID string, fields map[string]any) error

	UpsertInbox(ctx context.Context, key model.InboxKey, fields map[string]any) error
	PutInbox(ctx context.Context, record model.InboxRecord) error
	ListInbox(ctx context.Context) ([]model.InboxRecord, error)

	PutNotification(ctx context.Context, runID string, fields map[string]any) error
}

type mutationRepository struct {
	records store.RecordStore
}

func NewMutationRepository(records store.RecordStore) MutationRepository {
	return &mutationRepository{records: records}
}

func (r *mutationRepository) PutRequest(ctx context.Context, request model.MutationRequest) error {
	return r.records.Put(ctx, store.CollectionMutasi, request.RunID, request)
}

func (r *mutationRepository) GetRequest(ctx context.Context, runID string) (model.MutationRequest, error) {
	rec, err := r.records.Get(ctx, store.CollectionMutasi, runID)
	if err != nil {
		return model.MutationRequest{}, err
	}

	var request model.MutationRequest
	if err := json.Unmarshal(rec.Data, &request); err != nil {
		return model.MutationRequest{}, err
	}
	return request, nil
}

func (r *mutationRepository) ListRequests(ctx context.Context) ([]model.MutationRequest, error) {
	raw, err := r.records.ListAll(ctx, store.CollectionMutasi)
	if err != nil {
		return nil, err
	}

	requests := make([]model.MutationRequest, 0, len(raw))
	for _, rec := range raw {
		var request model.MutationRequest
		if unmarshalErr := json.Unmarshal(rec.Data, &request); unmarshalErr != nil {
			continue
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (r *mutationRepository) MergeRequest(ctx context.Context, runID string, fields map[string]any) error {
	return r.records.MergeUpsert(ctx, store.CollectionMutasi, runID, fields)
}

func (r *mutationRepository) UpsertInbox(ctx context.Context, key model.InboxKey, fields map[string]any) error {
	return r.records.MergeUpsert(ctx, store.CollectionMutasiInbox, key.String(), fields)
}

func (r *mutationRepository) PutInbox(ctx context.Context, record model.InboxRecord) error {
	return r.records.Put(ctx, store.CollectionMutasiInbox, record.Key().String(), record)
}

func (r *mutationRepository) ListInbox(ctx context.Context) ([]model.InboxRecord, error) {
	raw, err := r.records.ListAll(ctx, store.CollectionMutasiInbox)
	if err != nil {
		return nil, err
	}

	records := make([]model.InboxRecord, 0, len(raw))
	for _, rec := range raw {
		var inbox model.InboxRecord
		if unmarshalErr := json.Unmarshal(rec.Data, &inbox); unmarshalErr != nil {
			continue
		}
		records = append(records, inbox)
	}
	return records, nil
}

func (r *mutationRepository) PutNotification(ctx context.Context, runID string, fields map[string]any) error {
	return r.records.MergeUpsert(ctx, store.CollectionNotification, model.NotificationID(runID), fields)
}
