package sources

import (
	"gorm.io/gorm"

	"lendhub/internal/activity"
	"lendhub/internal/models"
)

// Access event types.
const (
	PortalAccessed  = "PORTAL_ACCESSED"
	ResourceViewed  = "RESOURCE_VIEWED"
	AccessDenied    = "ACCESS_DENIED"
	AccessGranted   = "ACCESS_GRANTED"
	AccessRevoked   = "ACCESS_REVOKED"
	APIKeyCreated   = "API_KEY_CREATED"
	APIKeyRevoked   = "API_KEY_REVOKED"
	ExportRequested = "EXPORT_REQUESTED"
)

var accessEventTypes = []string{
	PortalAccessed, ResourceViewed,
	AccessDenied, AccessGranted, AccessRevoked,
	APIKeyCreated, APIKeyRevoked, ExportRequested,
}

// AccessAdapter exposes access_events. With an organization scope it lists
// every member's access to that organization's portal instead of the
// subject's own.
type AccessAdapter struct {
	table[models.AccessEvent]
}

func NewAccessAdapter(db *gorm.DB) *AccessAdapter {
	a := &AccessAdapter{table: table[models.AccessEvent]{
		db:            db,
		name:          "access",
		category:      activity.CategoryAccess,
		eventTypes:    accessEventTypes,
		searchColumns: []string{"resource", "portal", "ip_address", "user_agent"},
		scope:         byOrganizationOrUser("user_id"),
	}}
	a.describe = a.Describe
	return a
}

func (a *AccessAdapter) Transform(rec activity.Record) activity.UnifiedActivity {
	ev, ok := asRow[models.AccessEvent](rec)
	if !ok {
		return activity.UnifiedActivity{Category: a.category, SourceTable: rec.TableName()}
	}
	meta := metadataOf(ev.Metadata)
	if ev.Resource != "" {
		meta["resource"] = ev.Resource
	}
	if ev.Portal != "" {
		meta["portal"] = ev.Portal
	}
	if ev.OrganizationID != nil {
		meta["organization_id"] = *ev.OrganizationID
	}
	return activity.UnifiedActivity{
		ID:          ev.ID,
		UserID:      ev.UserID,
		Category:    a.category,
		EventType:   ev.EventType,
		Activity:    a.Describe(ev.EventType, meta),
		Metadata:    meta,
		IPAddress:   ev.IPAddress,
		UserAgent:   ev.UserAgent,
		CreatedAt:   ev.CreatedAt,
		SourceTable: ev.TableName(),
	}
}

func (a *AccessAdapter) Describe(eventType string, metadata activity.Metadata) string {
	resource := metadata.Text("resource")
	switch eventType {
	case PortalAccessed:
		if portal := metadata.Text("portal"); portal != "" {
			return "Accessed the " + portal + " portal"
		}
		return "Accessed the portal"
	case ResourceViewed:
		if resource != "" {
			return "Viewed " + resource
		}
		return "Viewed a resource"
	case AccessDenied:
		if resource != "" {
			return "Access denied to " + resource
		}
		return "Access denied"
	case AccessGranted:
		if resource != "" {
			return "Access granted to " + resource
		}
		return "Access granted"
	case AccessRevoked:
		if resource != "" {
			return "Access revoked for " + resource
		}
		return "Access revoked"
	case APIKeyCreated:
		return "Created an API key"
	case APIKeyRevoked:
		return "Revoked an API key"
	case ExportRequested:
		if resource != "" {
			return "Requested an export of " + resource
		}
		return "Requested a data export"
	default:
		return activity.DefaultDescription(eventType)
	}
}
