package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreRecord is one key/value entry when the store is backed by MySQL.
type StoreRecord struct {
	Key       string    `gorm:"column:record_key;primaryKey;size:191"`
	Value     []byte    `gorm:"type:longblob;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StoreRecord) TableName() string {
	return "store_records"
}

func GenerateUUID() string {
	return uuid.New().String()
}
