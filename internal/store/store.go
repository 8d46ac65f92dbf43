package store

import (
	"context"
	"errors"
)

// Collection names. Every persisted document lives in exactly one of these.
const (
	CollectionBarangMasuk  = "barang_masuk"
	CollectionBarangKeluar = "barang_keluar"
	CollectionMutasi       = "mutasi_requests"
	CollectionMutasiInbox  = "mutasi_inbox"
	CollectionNotification = "notifications"
	CollectionLaporan      = "laporan"
)

var ErrNotFound = errors.New("record not found")

// Record is one raw document as the store sees it: an id and a JSON payload.
// Ordering is applied by consumers, never by the store.
type Record struct {
	ID   string
	Data []byte
}

// RecordStore is the only shared mutable resource in the system. Put is a
// full upsert-replace by id; MergeUpsert merges only the supplied fields into
// the existing document (creating it if absent). There is no cross-document
// transaction: callers sequence their writes and rely on each write being an
// idempotent "set fields" operation.
type RecordStore interface {
	ListAll(ctx context.Context, collection string) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Put(ctx context.Context, collection, id string, doc any) error
	MergeUpsert(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	ClearAll(ctx context.Context) error
}
