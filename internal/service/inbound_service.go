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
type CreateInboundRequest struct {
	Code      string         `json:"code" binding:"required"`
	Name      string         `json:"name" binding:"required"`
	Gudang    string         `json:"gudang" binding:"required"`
	Principle string         `json:"principle"`
	Large     model.Quantity `json:"large"`
	Medium    model.Quantity `json:"medium"`
	Small     model.Quantity `json:"small"`
	Timestamp time.Time      `json:"timestamp"`
	Expired   string         `json:"expired"`
	Note      string         `json:"note"`
}

type UpdateInboundRequest struct {
	Gudang    string          `json:"gudang" binding:"required"`
	Timestamp time.Time       `json:"timestamp" binding:"required"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Principle string          `json:"principle"`
	Large     *model.Quantity `json:"large"`
	Medium    *model.Quantity `json:"medium"`
	Small     *model.Quantity `json:"small"`
	Expired   *string         `json:"expired"`
	Note      *string         `json:"note"`
}

// InboundService manages barang masuk records. Records are never merged:
// each received-goods event stays an individual document, corrected in place
// or deleted whole.
type InboundService interface {
	Create(ctx context.Context, req CreateInboundRequest) (model.InboundRecord, error)
	List(ctx context.Context) ([]model.InboundRecord, error)
	Update(ctx context.Context, req UpdateInboundRequest) (model.InboundRecord, error)
	// Delete removes one record addressed by its (code, timestamp) composite,
	// the way the entry form identifies it.
	Delete(ctx context.Context, code string, timestamp time.Time) error
}

type inboundService struct {
	repo repository.InboundRepository
	now  func() time.Time
}

func NewInboundService(repo repository.InboundRepository) InboundService {
	return &inboundService{repo: repo, now: time.Now}
}

func (s *inboundService) Create(ctx context.Context, req CreateInboundRequest) (model.InboundRecord, error) {
	timestamp := req.Timestamp
	if timestamp.IsZero() {
		timestamp = s.now()
	}

	record := model.InboundRecord{
		Code:      req.Code,
		Name:      req.Name,
		Gudang:    req.Gudang,
		Principle: req.Principle,
		Large:     req.Large,
		Medium:    req.Medium,
		Small:     req.Small,
		Timestamp: timestamp,
		Expired:   req.Expired,
		Note:      req.Note,
	}

	if err := s.repo.Put(ctx, record); err != nil {
		return model.InboundRecord{}, fmt.Errorf("failed to save inbound record: %w", err)
	}
	return record, nil
}

func (s *inboundService) List(ctx context.Context) ([]model.InboundRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

func (s *inboundService) Update(ctx context.Context, req UpdateInboundRequest) (model.InboundRecord, error) {
	key := model.InboundKey{Gudang: req.Gudang, Timestamp: req.Timestamp}
	record, err := s.repo.Get(ctx, key)
	if err != nil {
		return model.InboundRecord{}, fmt.Errorf("inbound record not found: %w", err)
	}

	// Field-level correction: only supplied fields are overlaid
	if req.Code != "" {
		record.Code = req.Code
	}
	if req.Name != "" {
		record.Name = req.Name
	}
	if req.Principle != "" {
		record.Principle = req.Principle
	}
	if req.Large != nil {
		record.Large = *req.Large
	}
	if req.Medium != nil {
		record.Medium = *req.Medium
	}
	if req.Small != nil {
		record.Small = *req.Small
	}
	if req.Expired != nil {
		record.Expired = *req.Expired
	}
	if req.Note != nil {
		record.Note = *req.Note
	}

	if err := s.repo.Put(ctx, record); err != nil {
		return model.InboundRecord{}, fmt.Errorf("failed to update inbound record: %w", err)
	}
	return record, nil
}

func (s *inboundService) Delete(ctx context.Context, code string, timestamp time.Time) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	// The form addresses records by (code, timestamp); the store key is
	// (gudang, timestamp), so resolve through the listing.
	for _, record := range records {
		if record.Code == code && record.Timestamp.Equal(timestamp) {
			return s.repo.Delete(ctx, record.Key())
		}
	}
	return fmt.Errorf("inbound record not found for code %s", code)
}
