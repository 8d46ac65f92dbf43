package model

import "time"

// Structured identity keys for record documents. Each key type knows how to
// render its document id; the rendered string is the only form the record
// store ever sees. Two records producing the same key upsert-replace each
// other — that is defined behavior, not an accident.

// InboundKey identifies an inbound record by destination warehouse and the
// exact receive timestamp.
type InboundKey struct {
	Gudang    string
	Timestamp time.Time
}

func (k InboundKey) String() string {
	return k.Gudang + "-" + k.Timestamp.UTC().Format(time.RFC3339)
}

// OutboundKey identifies an outbound transaction by reference code and the
// calendar day it was submitted. Two transactions sharing the same reference
// on the same day collide by design (upsert-replace).
type OutboundKey struct {
	Reference string
	Date      time.Time
}

func (k OutboundKey) String() string {
	return k.Reference + "-" + k.Date.Format("02012006")
}

// InboxKey identifies the destination-side mirror of a mutation request.
type InboxKey struct {
	DestinationKey string
	RunID          string
}

func (k InboxKey) String() string {
	return k.DestinationKey + "-" + k.RunID
}

// NotificationID returns the document id of the best-effort status
// notification for a mutation run.
func NotificationID(runID string) string {
	return "mutasi-" + runID
}
