package models

import (
	"time"

	"lendhub/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for mutable tables
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// EventBase contains the columns shared by the append-only event tables.
// Event rows are never updated or soft-deleted, so there is no UpdatedAt
// or DeletedAt.
type EventBase struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate stamps CreatedAt when unset and derives a UUIDv7 from it, so
// that (created_at, id) ordering is consistent within a table.
func (b *EventBase) BeforeCreate(tx *gorm.DB) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.ID == "" {
		b.ID = uuid.NewAt(b.CreatedAt)
	}
	return nil
}
