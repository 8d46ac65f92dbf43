package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordDocument is the single table backing every collection: one row per
// document, payload stored as jsonb.
type RecordDocument struct {
	Collection string    `gorm:"type:varchar(64);primaryKey"`
	DocID      string    `gorm:"type:varchar(255);primaryKey;column:doc_id"`
	Data       []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a RecordStore backed by PostgreSQL via GORM.
func NewGormStore(db *gorm.DB) RecordStore {
	return &gormStore{db: db}
}

func (s *gormStore) ListAll(ctx context.Context, collection string) ([]Record, error) {
	var rows []RecordDocument
	if err := s.db.WithContext(ctx).Where("collection = ?", collection).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{ID: row.DocID, Data: row.Data})
	}
	return records, nil
}

func (s *gormStore) Get(ctx context.Context, collection, id string) (Record, error) {
	var row RecordDocument
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return Record{ID: row.DocID, Data: row.Data}, nil
}

func (s *gormStore) Put(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}

	row := RecordDocument{Collection: collection, DocID: id, Data: data}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *gormStore) MergeUpsert(ctx context.Context, collection, id string, fields map[string]any) error {
	// Read-modify-write inside a transaction so concurrent merges on the same
	// document do not lose fields.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		merged := map[string]any{}

		var row RecordDocument
		findErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND doc_id = ?", collection, id).
			First(&row).Error
		if findErr == nil {
			if unmarshalErr := json.Unmarshal(row.Data, &merged); unmarshalErr != nil {
				merged = map[string]any{}
			}
		} else if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		for k, v := range fields {
			merged[k] = v
		}

		data, marshalErr := json.Marshal(merged)
		if marshalErr != nil {
			return marshalErr
		}

		out := RecordDocument{Collection: collection, DocID: id, Data: data}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).Create(&out).Error
	})
	if err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, collection, id string) error {
	result := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&RecordDocument{})
	if result.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, result.Error)
	}
	return nil
}

func (s *gormStore) ClearAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM record_documents").Error; err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	return nil
}
