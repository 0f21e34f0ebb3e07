package models

import "gorm.io/datatypes"

// SecurityEvent records authentication and credential changes for a user.
type SecurityEvent struct {
	EventBase
	UserID     string            `gorm:"type:uuid;not null;index" json:"user_id"`
	EventType  string            `gorm:"size:64;not null;index" json:"event_type"`
	IPAddress  *string           `gorm:"size:64" json:"ip_address"`
	UserAgent  *string           `json:"user_agent"`
	DeviceInfo *string           `json:"device_info"`
	Metadata   datatypes.JSONMap `json:"metadata"`
}

// TableName implements gorm's tabler.
func (SecurityEvent) TableName() string { return "security_events" }
