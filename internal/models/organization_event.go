package models

import "gorm.io/datatypes"

// OrganizationEvent records membership and settings changes of an organization.
// ActorUserID is empty for system-initiated changes.
type OrganizationEvent struct {
	EventBase
	OrganizationID string            `gorm:"type:uuid;not null;index" json:"organization_id"`
	ActorUserID    *string           `gorm:"type:uuid;index" json:"actor_user_id,omitempty"`
	Portal         string            `gorm:"size:32;index" json:"portal"`
	EventType      string            `gorm:"size:64;not null;index" json:"event_type"`
	TargetEmail    string            `json:"target_email"`
	IPAddress      *string           `gorm:"size:64" json:"ip_address"`
	Metadata       datatypes.JSONMap `json:"metadata"`
}

// TableName implements gorm's tabler.
func (OrganizationEvent) TableName() string { return "organization_events" }
