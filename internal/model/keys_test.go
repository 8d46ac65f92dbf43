package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInboundKeyFormat(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	key := InboundKey{Gudang: "Gudang A", Timestamp: ts}
	assert.Equal(t, "Gudang A-2025-03-14T09:30:00Z", key.String())
}

func TestInboundKeyNormalizesZone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	local := time.Date(2025, 3, 14, 16, 30, 0, 0, jakarta)
	utc := local.UTC()

	a := InboundKey{Gudang: "Gudang A", Timestamp: local}
	b := InboundKey{Gudang: "Gudang A", Timestamp: utc}
	assert.Equal(t, a.String(), b.String())
}

func TestOutboundKeyFormat(t *testing.T) {
	ts := time.Date(2025, 3, 5, 23, 59, 0, 0, time.UTC)
	key := OutboundKey{Reference: "SJ-0042", Date: ts}
	assert.Equal(t, "SJ-0042-05032025", key.String())
}

func TestOutboundKeyCollidesWithinSameDay(t *testing.T) {
	morning := OutboundKey{Reference: "SJ-1", Date: time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)}
	evening := OutboundKey{Reference: "SJ-1", Date: time.Date(2025, 1, 2, 20, 0, 0, 0, time.UTC)}
	nextDay := OutboundKey{Reference: "SJ-1", Date: time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC)}

	assert.Equal(t, morning.String(), evening.String())
	assert.NotEqual(t, morning.String(), nextDay.String())
}

func TestInboxKeyAndNotificationID(t *testing.T) {
	key := InboxKey{DestinationKey: "Gudang BCD", RunID: "SJ-1-02012025"}
	assert.Equal(t, "Gudang BCD-SJ-1-02012025", key.String())
	assert.Equal(t, "mutasi-SJ-1-02012025", NotificationID("SJ-1-02012025"))
}
