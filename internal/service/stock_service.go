package service

import (
	"context"

	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/repository"
)

// StockRow is one row of the flat current-stock table: net quantities per
// item code across all warehouses.
type StockRow struct {
	Code    string         `json:"code"`
	Name    string         `json:"name"`
	Expired string         `json:"expired,omitempty"`
	Note    string         `json:"note,omitempty"`
	Large   model.Quantity `json:"large"`
	Medium  model.Quantity `json:"medium"`
	Small   model.Quantity `json:"small"`
}

// WarehouseStock is the per-item entry of the per-warehouse breakdown.
type WarehouseStock struct {
	Code      string                   `json:"code"`
	Name      string                   `json:"name"`
	Principle string                   `json:"principle"`
	Gudang    map[string]model.SizeQty `json:"gudang"`
}

// Breakdown holds the per-warehouse aggregation result, preserving the
// first-seen order of item codes.
type Breakdown struct {
	codes   []string
	entries map[string]*WarehouseStock
}

// Get returns the entry for an item code, if any inbound record created one.
func (b *Breakdown) Get(code string) (*WarehouseStock, bool) {
	entry, ok := b.entries[code]
	return entry, ok
}

// Entries returns all entries in first-seen code order.
func (b *Breakdown) Entries() []WarehouseStock {
	out := make([]WarehouseStock, 0, len(b.codes))
	for _, code := range b.codes {
		out = append(out, *b.entries[code])
	}
	return out
}

// AggregateStock folds the full inbound and outbound collections into the
// flat current-stock table, ignoring warehouses. An MB-kind transaction moves
// stock between warehouses, so it is net-zero here and skipped entirely.
// Outbound line items whose code never appeared in any inbound record are
// skipped silently: an outbound cannot materialize a negative-only item.
// Quantities are never clamped, so negative stock stays visible as a
// data-quality signal.
func AggregateStock(inbound []model.InboundRecord, outbound []model.OutboundRecord) []StockRow {
	acc := make(map[string]*StockRow, len(inbound))
	var codes []string

	for _, rec := range inbound {
		row, ok := acc[rec.Code]
		if !ok {
			row = &StockRow{
				Code:    rec.Code,
				Name:    rec.Name,
				Expired: rec.Expired,
				Note:    rec.Note,
			}
			acc[rec.Code] = row
			codes = append(codes, rec.Code)
		}
		row.Large += rec.Large
		row.Medium += rec.Medium
		row.Small += rec.Small
	}

	for _, tx := range outbound {
		if tx.IsMutation() {
			continue
		}
		for _, item := range tx.Items {
			row, ok := acc[item.Code]
			if !ok {
				continue
			}
			row.Large -= item.Large
			row.Medium -= item.Medium
			row.Small -= item.Small
		}
	}

	out := make([]StockRow, 0, len(codes))
	for _, code := range codes {
		out = append(out, *acc[code])
	}
	return out
}

// AggregateByWarehouse folds both collections into the per-item,
// per-warehouse breakdown. Outbound debits the source warehouse; an MB-kind
// transaction additionally credits the destination warehouse in the same
// pass. The outbound MB record is the single source of truth for a transfer,
// so the warehouse-agnostic total is conserved without any mirrored inbound
// record.
func AggregateByWarehouse(inbound []model.InboundRecord, outbound []model.OutboundRecord) *Breakdown {
	breakdown := &Breakdown{entries: make(map[string]*WarehouseStock, len(inbound))}

	for _, rec := range inbound {
		entry, ok := breakdown.entries[rec.Code]
		if !ok {
			principle := rec.Principle
			if principle == "" {
				principle = "-"
			}
			entry = &WarehouseStock{
				Code:      rec.Code,
				Name:      rec.Name,
				Principle: principle,
				Gudang:    make(map[string]model.SizeQty),
			}
			breakdown.entries[rec.Code] = entry
			breakdown.codes = append(breakdown.codes, rec.Code)
		}
		entry.Gudang[rec.Gudang] = entry.Gudang[rec.Gudang].Add(rec.Qty())
	}

	for _, tx := range outbound {
		for _, item := range tx.Items {
			entry, ok := breakdown.entries[item.Code]
			if !ok {
				// Same skip policy as the flat table: outbound cannot create
				// item entries.
				continue
			}
			entry.Gudang[tx.GudangAsal] = entry.Gudang[tx.GudangAsal].Sub(item.Qty())
			if tx.IsMutation() && tx.GudangTujuan != "" {
				entry.Gudang[tx.GudangTujuan] = entry.Gudang[tx.GudangTujuan].Add(item.Qty())
			}
		}
	}

	return breakdown
}

// Principles returns the distinct principal/brand values seen across inbound
// records, in first-seen order. Outbound records never contribute.
func Principles(inbound []model.InboundRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range inbound {
		principle := rec.Principle
		if principle == "" {
			principle = "-"
		}
		if !seen[principle] {
			seen[principle] = true
			out = append(out, principle)
		}
	}
	return out
}

// StockService recomputes stock views from the record store on every call.
// There is deliberately no cache in front of the aggregation: recompute cost
// is traded for results that are always consistent with the store.
type StockService interface {
	GetCurrentStock(ctx context.Context) ([]StockRow, error)
	GetWarehouseBreakdown(ctx context.Context, principle string) ([]WarehouseStock, error)
	ListPrinciples(ctx context.Context) ([]string, error)
}

type stockService struct {
	inboundRepo  repository.InboundRepository
	outboundRepo repository.OutboundRepository
}

func NewStockService(inboundRepo repository.InboundRepository, outboundRepo repository.OutboundRepository) StockService {
	return &stockService{inboundRepo: inboundRepo, outboundRepo: outboundRepo}
}

func (s *stockService) GetCurrentStock(ctx context.Context) ([]StockRow, error) {
	inbound, outbound, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateStock(inbound, outbound), nil
}

func (s *stockService) GetWarehouseBreakdown(ctx context.Context, principle string) ([]WarehouseStock, error) {
	inbound, outbound, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	entries := AggregateByWarehouse(inbound, outbound).Entries()
	if principle == "" {
		return entries, nil
	}

	filtered := make([]WarehouseStock, 0, len(entries))
	for _, entry := range entries {
		if entry.Principle == principle {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func (s *stockService) ListPrinciples(ctx context.Context) ([]string, error) {
	inbound, err := s.inboundRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Principles(inbound), nil
}

func (s *stockService) load(ctx context.Context) ([]model.InboundRecord, []model.OutboundRecord, error) {
	inbound, err := s.inboundRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	outbound, err := s.outboundRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return inbound, outbound, nil
}
