package models

import "gorm.io/datatypes"

// OnboardingEvent tracks a borrower's progress through the onboarding wizard
// (identity checks, bank linking, credit authorization).
type OnboardingEvent struct {
	EventBase
	UserID    string            `gorm:"type:uuid;not null;index" json:"user_id"`
	EventType string            `gorm:"size:64;not null;index" json:"event_type"`
	Step      string            `gorm:"size:64" json:"step"`
	Status    string            `gorm:"size:32" json:"status"`
	Metadata  datatypes.JSONMap `json:"metadata"`
}

// TableName implements gorm's tabler.
func (OnboardingEvent) TableName() string { return "onboarding_events" }
