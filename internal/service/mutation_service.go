package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/repository"
	"stokgudang/backend/internal/store"
	ws "stokgudang/backend/internal/websocket"
	"stokgudang/backend/pkg/logger"
)

// ErrConflictingDecision is returned when a terminal mutation request
// receives the opposite decision. Re-applying the same terminal decision is
// allowed so a retry after a partial failure converges.
var ErrConflictingDecision = errors.New("mutation request already finalized with a different decision")

// MutationEvent is the websocket payload broadcast on lifecycle changes.
type MutationEvent struct {
	Event  string `json:"event"`
	RunID  string `json:"runId"`
	Status string `json:"status"`
}

type MutationService interface {
	// CreateFromOutbound registers the transfer documents for an MB-kind
	// outbound transaction: the request (source of truth), the destination
	// inbox mirror and a best-effort notification.
	CreateFromOutbound(ctx context.Context, outbound model.OutboundRecord) (model.MutationRequest, error)
	Approve(ctx context.Context, runID string, actor model.Actor) (model.MutationRequest, error)
	Reject(ctx context.Context, runID string, actor model.Actor, reason string) (model.MutationRequest, error)
	ListInbox(ctx context.Context, allowedGroups []string, filter string) ([]model.InboxRecord, error)
}

type mutationService struct {
	mutationRepo repository.MutationRepository
	outboundRepo repository.OutboundRepository
	hub          *ws.Hub
	log          *logger.Logger
	now          func() time.Time
}

func NewMutationService(
	mutationRepo repository.MutationRepository,
	outboundRepo repository.OutboundRepository,
	hub *ws.Hub,
	log *logger.Logger,
) MutationService {
	return &mutationService{
		mutationRepo: mutationRepo,
		outboundRepo: outboundRepo,
		hub:          hub,
		log:          log,
		now:          time.Now,
	}
}

func (s *mutationService) CreateFromOutbound(ctx context.Context, outbound model.OutboundRecord) (model.MutationRequest, error) {
	runID := outbound.Key().String()

	createdAt := outbound.Timestamp
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	items := make([]model.MutationItem, 0, len(outbound.Items))
	for _, item := range outbound.Items {
		items = append(items, model.MutationItem{
			Name:   item.Name,
			Large:  item.Large,
			Medium: item.Medium,
			Small:  item.Small,
		})
	}

	request := model.MutationRequest{
		RunID:        runID,
		GudangAsal:   outbound.GudangAsal,
		GudangTujuan: outbound.GudangTujuan,
		Status:       model.MutasiPending,
		Operator:     outbound.Operator,
		CreatedAt:    createdAt,
		Items:        items,
	}

	if err := s.mutationRepo.PutRequest(ctx, request); err != nil {
		return model.MutationRequest{}, fmt.Errorf("write mutation request: %w", err)
	}

	inbox := model.InboxRecord{
		DestinationKey: destinationKey(request.GudangTujuan),
		RunID:          runID,
		GudangAsal:     request.GudangAsal,
		GudangTujuan:   request.GudangTujuan,
		Status:         model.MutasiPending,
		Operator:       request.Operator,
		CreatedAt:      createdAt,
		Items:          items,
	}
	if err := s.mutationRepo.PutInbox(ctx, inbox); err != nil {
		return model.MutationRequest{}, fmt.Errorf("write mutation inbox: %w", err)
	}

	s.notify(ctx, runID, model.NotifPending)
	return request, nil
}

func (s *mutationService) Approve(ctx context.Context, runID string, actor model.Actor) (model.MutationRequest, error) {
	return s.decide(ctx, runID, actor, model.MutasiApproved, "")
}

func (s *mutationService) Reject(ctx context.Context, runID string, actor model.Actor, reason string) (model.MutationRequest, error) {
	return s.decide(ctx, runID, actor, model.MutasiRejected, reason)
}

// decide applies an approve/reject decision as a fixed sequence of
// independently idempotent writes. There is no cross-document transaction:
// any step can fail and the caller retries the whole call, which converges
// because every step sets fields rather than incrementing anything.
func (s *mutationService) decide(ctx context.Context, runID string, actor model.Actor, status, reason string) (model.MutationRequest, error) {
	request, err := s.mutationRepo.GetRequest(ctx, runID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return model.MutationRequest{}, fmt.Errorf("fetch mutation request: %w", err)
	}

	// Terminal guard: the same decision may be re-applied (retry after a
	// partial failure), the opposite one may not.
	if request.Status == model.MutasiApproved || request.Status == model.MutasiRejected {
		if request.Status != status {
			return model.MutationRequest{}, ErrConflictingDecision
		}
	}

	// Destination falls back to "Unknown" rather than failing; the decision
	// still lands, the inbox mirror just becomes undiscoverable under normal
	// filters.
	destKey := destinationKey(request.GudangTujuan)

	confirmedAt := s.now()
	confirmedBy := actor.DisplayName()

	outboundFields := map[string]any{
		"mutasiStatus": status,
		"confirmedAt":  confirmedAt,
		"confirmedBy":  confirmedBy,
	}
	if status == model.MutasiRejected {
		outboundFields["note"] = reason
	}
	if err := s.outboundRepo.MergeFields(ctx, runID, outboundFields); err != nil {
		return model.MutationRequest{}, fmt.Errorf("stamp outbound record: %w", err)
	}

	requestFields := map[string]any{
		"status":      status,
		"confirmedAt": confirmedAt,
		"confirmedBy": confirmedBy,
	}
	if status == model.MutasiRejected {
		requestFields["reason"] = reason
	}
	if err := s.mutationRepo.MergeRequest(ctx, runID, requestFields); err != nil {
		return model.MutationRequest{}, fmt.Errorf("stamp mutation request: %w", err)
	}

	inboxKey := model.InboxKey{DestinationKey: destKey, RunID: runID}
	if err := s.mutationRepo.UpsertInbox(ctx, inboxKey, map[string]any{"status": status}); err != nil {
		return model.MutationRequest{}, fmt.Errorf("stamp mutation inbox: %w", err)
	}

	notifStatus := model.NotifDone
	if status == model.MutasiRejected {
		notifStatus = model.NotifRejected
	}
	s.notify(ctx, runID, notifStatus)

	request.RunID = runID
	request.Status = status
	request.ConfirmedAt = &confirmedAt
	request.ConfirmedBy = confirmedBy
	if status == model.MutasiRejected {
		request.Reason = reason
	}
	return request, nil
}

func (s *mutationService) ListInbox(ctx context.Context, allowedGroups []string, filter string) ([]model.InboxRecord, error) {
	records, err := s.mutationRepo.ListInbox(ctx)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(allowedGroups))
	for _, group := range allowedGroups {
		allowed[model.CanonicalWarehouse(group)] = true
	}

	needle := strings.ToLower(strings.TrimSpace(filter))

	visible := make([]model.InboxRecord, 0, len(records))
	for _, rec := range records {
		if rec.Status != model.MutasiPending {
			continue
		}
		if !allowed[model.CanonicalWarehouse(rec.GudangTujuan)] {
			continue
		}
		if needle != "" && !inboxMatches(rec, needle) {
			continue
		}
		visible = append(visible, rec)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.Before(visible[j].CreatedAt)
	})
	return visible, nil
}

func inboxMatches(rec model.InboxRecord, needle string) bool {
	for _, field := range []string{rec.RunID, rec.GudangAsal, rec.GudangTujuan, rec.Operator} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// notify issues the best-effort side-channel writes: the notification
// document and a websocket broadcast. Failures are logged and never fail the
// primary operation.
func (s *mutationService) notify(ctx context.Context, runID, status string) {
	fields := map[string]any{
		"runId":     runID,
		"status":    status,
		"updatedAt": s.now(),
	}
	if err := s.mutationRepo.PutNotification(ctx, runID, fields); err != nil {
		s.log.Warn().Err(err).Str("runId", runID).Msg("notification write failed")
	}

	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(MutationEvent{Event: "mutasi", RunID: runID, Status: status})
	if err != nil {
		return
	}
	select {
	case s.hub.Broadcast <- payload:
	default:
		s.log.Warn().Str("runId", runID).Msg("websocket broadcast dropped")
	}
}

// destinationKey canonicalizes the destination label, falling back to a
// literal sentinel when the request carries none.
func destinationKey(gudangTujuan string) string {
	if strings.TrimSpace(gudangTujuan) == "" {
		return "Unknown"
	}
	return model.CanonicalWarehouse(gudangTujuan)
}
