package sources

import (
	"gorm.io/gorm"

	"lendhub/internal/activity"
	"lendhub/internal/models"
)

// Organization event types.
const (
	OrganizationCreated = "ORGANIZATION_CREATED"
	OrganizationUpdated = "ORGANIZATION_UPDATED"
	MemberInvited       = "MEMBER_INVITED"
	MemberJoined        = "MEMBER_JOINED"
	MemberRemoved       = "MEMBER_REMOVED"
	MemberRoleChanged   = "MEMBER_ROLE_CHANGED"
	InvitationRevoked   = "INVITATION_REVOKED"
	SettingsChanged     = "SETTINGS_CHANGED"
	BillingUpdated      = "BILLING_UPDATED"
)

var organizationEventTypes = []string{
	OrganizationCreated, OrganizationUpdated,
	MemberInvited, MemberJoined, MemberRemoved, MemberRoleChanged,
	InvitationRevoked, SettingsChanged, BillingUpdated,
}

// OrganizationAdapter exposes organization_events. Without an organization
// scope it lists the changes the subject made as actor.
type OrganizationAdapter struct {
	table[models.OrganizationEvent]
}

func NewOrganizationAdapter(db *gorm.DB) *OrganizationAdapter {
	a := &OrganizationAdapter{table: table[models.OrganizationEvent]{
		db:            db,
		name:          "organization",
		category:      activity.CategoryOrganization,
		eventTypes:    organizationEventTypes,
		searchColumns: []string{"target_email", "portal", "ip_address"},
		scope:         byOrganizationOrUser("actor_user_id"),
	}}
	a.describe = a.Describe
	return a
}

func (a *OrganizationAdapter) Transform(rec activity.Record) activity.UnifiedActivity {
	ev, ok := asRow[models.OrganizationEvent](rec)
	if !ok {
		return activity.UnifiedActivity{Category: a.category, SourceTable: rec.TableName()}
	}
	meta := metadataOf(ev.Metadata)
	meta["organization_id"] = ev.OrganizationID
	if ev.TargetEmail != "" {
		meta["target_email"] = ev.TargetEmail
	}
	if ev.Portal != "" {
		meta["portal"] = ev.Portal
	}

	var userID string
	if ev.ActorUserID != nil {
		userID = *ev.ActorUserID
	}
	return activity.UnifiedActivity{
		ID:          ev.ID,
		UserID:      userID,
		Category:    a.category,
		EventType:   ev.EventType,
		Activity:    a.Describe(ev.EventType, meta),
		Metadata:    meta,
		IPAddress:   ev.IPAddress,
		CreatedAt:   ev.CreatedAt,
		SourceTable: ev.TableName(),
	}
}

func (a *OrganizationAdapter) Describe(eventType string, metadata activity.Metadata) string {
	target := metadata.Text("target_email")
	switch eventType {
	case OrganizationCreated:
		if name := metadata.Text("organization_name"); name != "" {
			return "Created organization " + name
		}
		return "Created the organization"
	case OrganizationUpdated:
		return "Updated organization details"
	case MemberInvited:
		if target != "" {
			return "Invited " + target
		}
		return "Invited a member"
	case MemberJoined:
		if target != "" {
			return target + " joined the organization"
		}
		return "A member joined the organization"
	case MemberRemoved:
		if target != "" {
			return "Removed " + target
		}
		return "Removed a member"
	case MemberRoleChanged:
		role := metadata.Text("role")
		switch {
		case target != "" && role != "":
			return "Changed " + target + "'s role to " + role
		case target != "":
			return "Changed " + target + "'s role"
		}
		return "Changed a member's role"
	case InvitationRevoked:
		if target != "" {
			return "Revoked the invitation for " + target
		}
		return "Revoked an invitation"
	case SettingsChanged:
		return "Changed organization settings"
	case BillingUpdated:
		if amount := metadata.Amount("amount_cents", metadata.Text("currency")); amount != "" {
			return "Updated billing (" + amount + ")"
		}
		return "Updated billing details"
	default:
		return activity.DefaultDescription(eventType)
	}
}
