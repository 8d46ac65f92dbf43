package model

import (
	"time"
)

// JenisForm enum constants for outbound transactions
const (
	FormDelivery = "DR" // delivery to customer
	FormMutation = "MB" // inter-warehouse transfer
	FormReturn   = "RB" // return to supplier
)

// InboundRecord (barang masuk) represents one received-goods event. Item
// identity is denormalized onto the record; there is no separate item master.
type InboundRecord struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Gudang    string    `json:"gudang"`
	Principle string    `json:"principle"`
	Large     Quantity  `json:"large"`
	Medium    Quantity  `json:"medium"`
	Small     Quantity  `json:"small"`
	Timestamp time.Time `json:"timestamp"`
	Expired   string    `json:"expired,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// Qty returns the record's size triple.
func (r InboundRecord) Qty() SizeQty {
	return SizeQty{Large: r.Large, Medium: r.Medium, Small: r.Small}
}

// Key returns the record's structured identity key.
func (r InboundRecord) Key() InboundKey {
	return InboundKey{Gudang: r.Gudang, Timestamp: r.Timestamp}
}

// OutboundItem is a single line item within an outbound transaction.
type OutboundItem struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Principle string   `json:"principle"`
	Large     Quantity `json:"large"`
	Medium    Quantity `json:"medium"`
	Small     Quantity `json:"small"`
}

// Qty returns the line item's size triple.
func (i OutboundItem) Qty() SizeQty {
	return SizeQty{Large: i.Large, Medium: i.Medium, Small: i.Small}
}

// OutboundRecord (barang keluar) represents one shipped, transferred or
// returned-goods transaction grouping one or more line items. A record with
// JenisForm == FormMutation is the single source of truth for an
// inter-warehouse transfer: GudangTujuan carries the destination and the
// aggregator credits it directly, no mirrored inbound record is written.
type OutboundRecord struct {
	Reference    string         `json:"reference"`
	GudangAsal   string         `json:"gudangAsal"`
	GudangTujuan string         `json:"gudangTujuan,omitempty"` // only meaningful for MB
	JenisForm    string         `json:"jenisForm"`
	Vehicle      string         `json:"nopol,omitempty"`
	Driver       string         `json:"driver,omitempty"`
	Operator     string         `json:"operator,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Note         string         `json:"note,omitempty"`
	MutasiStatus string         `json:"mutasiStatus,omitempty"`
	ConfirmedAt  *time.Time     `json:"confirmedAt,omitempty"`
	ConfirmedBy  string         `json:"confirmedBy,omitempty"`
	Items        []OutboundItem `json:"items"`
}

// Key returns the record's structured identity key.
func (r OutboundRecord) Key() OutboundKey {
	return OutboundKey{Reference: r.Reference, Date: r.Timestamp}
}

// IsMutation reports whether the transaction is an inter-warehouse transfer.
func (r OutboundRecord) IsMutation() bool {
	return r.JenisForm == FormMutation
}
