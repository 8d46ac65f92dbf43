package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/repository"
)

// DTOs
type OutboundItemRequest struct {
	Code      string         `json:"code" binding:"required"`
	Name      string         `json:"name" binding:"required"`
	Principle string         `json:"principle"`
	Large     model.Quantity `json:"large"`
	Medium    model.Quantity `json:"medium"`
	Small     model.Quantity `json:"small"`
}

type CreateOutboundRequest struct {
	Reference    string                `json:"reference" binding:"required"`
	GudangAsal   string                `json:"gudangAsal" binding:"required"`
	JenisForm    string                `json:"jenisForm" binding:"required,oneof=DR MB RB"`
	GudangTujuan string                `json:"gudangTujuan"`
	Vehicle      string                `json:"nopol"`
	Driver       string                `json:"driver"`
	Note         string                `json:"note"`
	Timestamp    time.Time             `json:"timestamp"`
	Items        []OutboundItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OutboundResponse struct {
	ID     string               `json:"id"`
	Record model.OutboundRecord `json:"record"`
}

// OutboundService manages barang keluar transactions. Submitting an MB-kind
// transaction also registers the mutation transfer documents; the two writes
// are not atomic, so a failure after the outbound write leaves a visible
// half-applied transfer — the caller retries the whole submission, which is
// safe because every write is an idempotent upsert by the same key.
type OutboundService interface {
	Create(ctx context.Context, actor model.Actor, req CreateOutboundRequest) (OutboundResponse, error)
	List(ctx context.Context) ([]model.OutboundRecord, error)
	Delete(ctx context.Context, id string) error
}

type outboundService struct {
	repo      repository.OutboundRepository
	mutations MutationService
	now       func() time.Time
}

func NewOutboundService(repo repository.OutboundRepository, mutations MutationService) OutboundService {
	return &outboundService{repo: repo, mutations: mutations, now: time.Now}
}

func (s *outboundService) Create(ctx context.Context, actor model.Actor, req CreateOutboundRequest) (OutboundResponse, error) {
	if req.JenisForm == model.FormMutation && req.GudangTujuan == "" {
		return OutboundResponse{}, fmt.Errorf("gudang tujuan is required for form %s", model.FormMutation)
	}

	timestamp := req.Timestamp
	if timestamp.IsZero() {
		timestamp = s.now()
	}

	items := make([]model.OutboundItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OutboundItem{
			Code:      item.Code,
			Name:      item.Name,
			Principle: item.Principle,
			Large:     item.Large,
			Medium:    item.Medium,
			Small:     item.Small,
		})
	}

	record := model.OutboundRecord{
		Reference:    req.Reference,
		GudangAsal:   req.GudangAsal,
		GudangTujuan: req.GudangTujuan,
		JenisForm:    req.JenisForm,
		Vehicle:      req.Vehicle,
		Driver:       req.Driver,
		Operator:     actor.DisplayName(),
		Timestamp:    timestamp,
		Note:         req.Note,
		Items:        items,
	}
	if record.IsMutation() {
		record.MutasiStatus = model.MutasiPending
	}

	if err := s.repo.Put(ctx, record); err != nil {
		return OutboundResponse{}, fmt.Errorf("failed to save outbound record: %w", err)
	}

	if record.IsMutation() {
		if _, err := s.mutations.CreateFromOutbound(ctx, record); err != nil {
			return OutboundResponse{}, fmt.Errorf("outbound saved but transfer registration failed, retry the submission: %w", err)
		}
	}

	return OutboundResponse{ID: record.Key().String(), Record: record}, nil
}

func (s *outboundService) List(ctx context.Context) ([]model.OutboundRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

func (s *outboundService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
