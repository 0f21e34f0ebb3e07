package models

import "gorm.io/datatypes"

// AccessEvent records portal and resource access, optionally inside an
// organization's portal.
type AccessEvent struct {
	EventBase
	UserID         string            `gorm:"type:uuid;not null;index" json:"user_id"`
	OrganizationID *string           `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	Portal         string            `gorm:"size:32;index" json:"portal"`
	Resource       string            `json:"resource"`
	EventType      string            `gorm:"size:64;not null;index" json:"event_type"`
	IPAddress      *string           `gorm:"size:64" json:"ip_address"`
	UserAgent      *string           `json:"user_agent"`
	Metadata       datatypes.JSONMap `json:"metadata"`
}

// TableName implements gorm's tabler.
func (AccessEvent) TableName() string { return "access_events" }
