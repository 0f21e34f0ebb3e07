package models

import "gorm.io/datatypes"

// DocumentEvent records the lifecycle of loan documents (pay stubs, bank
// statements, signed agreements).
type DocumentEvent struct {
	EventBase
	UserID       string            `gorm:"type:uuid;not null;index" json:"user_id"`
	DocumentID   string            `gorm:"type:uuid;index" json:"document_id"`
	DocumentName string            `json:"document_name"`
	DocumentType string            `gorm:"size:64" json:"document_type"`
	EventType    string            `gorm:"size:64;not null;index" json:"event_type"`
	IPAddress    *string           `gorm:"size:64" json:"ip_address"`
	Metadata     datatypes.JSONMap `json:"metadata"`
}

// TableName implements gorm's tabler.
func (DocumentEvent) TableName() string { return "document_events" }
