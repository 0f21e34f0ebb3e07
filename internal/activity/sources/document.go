package sources

import (
	"gorm.io/gorm"

	"lendhub/internal/activity"
	"lendhub/internal/models"
)

// Document event types.
const (
	DocumentUploaded   = "DOCUMENT_UPLOADED"
	DocumentViewed     = "DOCUMENT_VIEWED"
	DocumentDownloaded = "DOCUMENT_DOWNLOADED"
	DocumentSigned     = "DOCUMENT_SIGNED"
	DocumentApproved   = "DOCUMENT_APPROVED"
	DocumentRejected   = "DOCUMENT_REJECTED"
	DocumentDeleted    = "DOCUMENT_DELETED"
	DocumentRequested  = "DOCUMENT_REQUESTED"
	DocumentExpired    = "DOCUMENT_EXPIRED"
)

var documentEventTypes = []string{
	DocumentUploaded, DocumentViewed, DocumentDownloaded,
	DocumentSigned, DocumentApproved, DocumentRejected,
	DocumentDeleted, DocumentRequested, DocumentExpired,
}

// DocumentAdapter exposes document_events.
type DocumentAdapter struct {
	table[models.DocumentEvent]
}

func NewDocumentAdapter(db *gorm.DB) *DocumentAdapter {
	a := &DocumentAdapter{table: table[models.DocumentEvent]{
		db:            db,
		name:          "document",
		category:      activity.CategoryDocument,
		eventTypes:    documentEventTypes,
		searchColumns: []string{"document_name", "document_type", "ip_address"},
		scope:         byUser("user_id"),
	}}
	a.describe = a.Describe
	return a
}

func (a *DocumentAdapter) Transform(rec activity.Record) activity.UnifiedActivity {
	ev, ok := asRow[models.DocumentEvent](rec)
	if !ok {
		return activity.UnifiedActivity{Category: a.category, SourceTable: rec.TableName()}
	}
	meta := metadataOf(ev.Metadata)
	if ev.DocumentName != "" {
		meta["document_name"] = ev.DocumentName
	}
	if ev.DocumentType != "" {
		meta["document_type"] = ev.DocumentType
	}
	if ev.DocumentID != "" {
		meta["document_id"] = ev.DocumentID
	}
	return activity.UnifiedActivity{
		ID:          ev.ID,
		UserID:      ev.UserID,
		Category:    a.category,
		EventType:   ev.EventType,
		Activity:    a.Describe(ev.EventType, meta),
		Metadata:    meta,
		IPAddress:   ev.IPAddress,
		CreatedAt:   ev.CreatedAt,
		SourceTable: ev.TableName(),
	}
}

func (a *DocumentAdapter) Describe(eventType string, metadata activity.Metadata) string {
	subject := "a document"
	if name := metadata.Text("document_name"); name != "" {
		subject = name
	}
	switch eventType {
	case DocumentUploaded:
		return "Uploaded " + subject
	case DocumentViewed:
		return "Viewed " + subject
	case DocumentDownloaded:
		return "Downloaded " + subject
	case DocumentSigned:
		return "Signed " + subject
	case DocumentApproved:
		return "Document approved: " + subject
	case DocumentRejected:
		if reason := metadata.Text("reason"); reason != "" {
			return "Document rejected: " + subject + " (" + reason + ")"
		}
		return "Document rejected: " + subject
	case DocumentDeleted:
		return "Deleted " + subject
	case DocumentRequested:
		return "Document requested: " + subject
	case DocumentExpired:
		return "Document expired: " + subject
	default:
		return activity.DefaultDescription(eventType)
	}
}
