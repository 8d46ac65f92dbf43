package database

import (
	"log"

	"stokgudang/backend/internal/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// A single document table backs every record collection
	if err := db.AutoMigrate(&store.RecordDocument{}); err != nil {
		log.Println("WARNING: Failed to auto-migrate record documents:", err)
	}

	return db, nil
}
