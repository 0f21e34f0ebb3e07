package sources

import (
	"gorm.io/gorm"

	"lendhub/internal/activity"
)

// All returns one adapter per category, all reading from db.
func All(db *gorm.DB) []activity.Adapter {
	return []activity.Adapter{
		NewSecurityAdapter(db),
		NewOnboardingAdapter(db),
		NewDocumentAdapter(db),
		NewAccessAdapter(db),
		NewOrganizationAdapter(db),
	}
}

// NewRegistry returns a registry holding every database-backed adapter.
func NewRegistry(db *gorm.DB) (*activity.Registry, error) {
	return activity.NewRegistry(All(db)...)
}
