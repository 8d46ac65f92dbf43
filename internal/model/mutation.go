package model

import "time"

// MutasiStatus constants. PENDING is the only initial state; APPROVED and
// REJECTED are terminal.
const (
	MutasiPending  = "PENDING"
	MutasiApproved = "APPROVED"
	MutasiRejected = "REJECTED"
)

// Notification status constants
const (
	NotifPending  = "PENDING"
	NotifDone     = "DONE"
	NotifRejected = "REJECTED"
)

// MutationItem is a line item embedded in a mutation request. Only the data
// the destination side needs to review is mirrored.
type MutationItem struct {
	Name   string   `json:"name"`
	Large  Quantity `json:"large"`
	Medium Quantity `json:"medium"`
	Small  Quantity `json:"small"`
}

// MutationRequest is the single source of truth for one in-flight
// inter-warehouse transfer. RunID equals the identity key of the outbound
// transaction that created it.
type MutationRequest struct {
	RunID             string         `json:"runId"`
	GudangAsal        string         `json:"gudangAsal"`
	GudangTujuan      string         `json:"gudangTujuan"`
	Status            string         `json:"status"`
	Operator          string         `json:"operator,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	ConfirmedAt       *time.Time     `json:"confirmedAt,omitempty"`
	ConfirmedBy       string         `json:"confirmedBy,omitempty"`
	Reason            string         `json:"reason,omitempty"`
	RequireSuratJalan bool           `json:"requireSuratJalan,omitempty"`
	SuratJalanNo      string         `json:"suratJalanNo,omitempty"`
	Items             []MutationItem `json:"items"`
}

// InboxRecord is the per-destination mirror of a mutation request. It is a
// derived, best-effort copy and may legitimately lag behind the request.
type InboxRecord struct {
	DestinationKey string         `json:"destinationKey"`
	RunID          string         `json:"runId"`
	GudangAsal     string         `json:"gudangAsal"`
	GudangTujuan   string         `json:"gudangTujuan"`
	Status         string         `json:"status"`
	Operator       string         `json:"operator,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	Items          []MutationItem `json:"items"`
}

// Key returns the inbox record's structured identity key.
func (r InboxRecord) Key() InboxKey {
	return InboxKey{DestinationKey: r.DestinationKey, RunID: r.RunID}
}

// Notification is a status-only, best-effort signal for lightweight polling.
type Notification struct {
	RunID     string    `json:"runId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}
