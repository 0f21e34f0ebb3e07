package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "lendhub/internal/errors"
	"lendhub/internal/models"
)

// organizationService handles organization membership checks.
type organizationService struct {
	db *gorm.DB
}

// NewOrganizationService creates a new OrganizationServicer.
func NewOrganizationService(db *gorm.DB) OrganizationServicer {
	return &organizationService{db: db}
}

// RequireMember returns nil when userID belongs to the organization.
func (s *organizationService) RequireMember(ctx context.Context, organizationID, userID string) error {
	var org models.Organization
	if err := s.db.WithContext(ctx).Select("id").Where("id = ?", organizationID).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOrganizationNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrNotOrganizationMember
	}
	return nil
}
