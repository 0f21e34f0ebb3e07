package models

// Organization is a lending institution or broker firm that users belong to.
type Organization struct {
	Base
	Name    string               `gorm:"not null" json:"name"`
	Members []OrganizationMember `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
}

// OrganizationMember links a user to an organization with a portal role.
type OrganizationMember struct {
	Base
	OrganizationID string `gorm:"type:uuid;not null;uniqueIndex:idx_org_member" json:"organization_id"`
	UserID         string `gorm:"type:uuid;not null;uniqueIndex:idx_org_member" json:"user_id"`
	Role           string `gorm:"not null;default:member" json:"role"`
}

// Organization member roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Portals through which organization members reach the platform.
const (
	PortalBorrower = "borrower"
	PortalLender   = "lender"
	PortalBroker   = "broker"
	PortalAdmin    = "admin"
)

// Portals returns the known portal selectors.
func Portals() []string {
	return []string{PortalBorrower, PortalLender, PortalBroker, PortalAdmin}
}
