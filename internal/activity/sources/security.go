package sources

import (
	"gorm.io/gorm"

	"lendhub/internal/activity"
	"lendhub/internal/models"
)

// Security event types.
const (
	LoginSuccess           = "LOGIN_SUCCESS"
	LoginFailed            = "LOGIN_FAILED"
	Logout                 = "LOGOUT"
	PasswordChanged        = "PASSWORD_CHANGED"
	PasswordResetRequested = "PASSWORD_RESET_REQUESTED"
	PasswordResetCompleted = "PASSWORD_RESET_COMPLETED"
	TwoFactorEnabled       = "TWO_FACTOR_ENABLED"
	TwoFactorDisabled      = "TWO_FACTOR_DISABLED"
	NewDeviceLogin         = "NEW_DEVICE_LOGIN"
	AccountLocked          = "ACCOUNT_LOCKED"
	AccountUnlocked        = "ACCOUNT_UNLOCKED"
	EmailChanged           = "EMAIL_CHANGED"
	SessionRevoked         = "SESSION_REVOKED"
)

var securityEventTypes = []string{
	LoginSuccess, LoginFailed, Logout,
	PasswordChanged, PasswordResetRequested, PasswordResetCompleted,
	TwoFactorEnabled, TwoFactorDisabled,
	NewDeviceLogin, AccountLocked, AccountUnlocked,
	EmailChanged, SessionRevoked,
}

// SecurityAdapter exposes security_events.
type SecurityAdapter struct {
	table[models.SecurityEvent]
}

func NewSecurityAdapter(db *gorm.DB) *SecurityAdapter {
	a := &SecurityAdapter{table: table[models.SecurityEvent]{
		db:            db,
		name:          "security",
		category:      activity.CategorySecurity,
		eventTypes:    securityEventTypes,
		searchColumns: []string{"ip_address", "user_agent", "device_info"},
		scope:         byUser("user_id"),
	}}
	a.describe = a.Describe
	return a
}

func (a *SecurityAdapter) Transform(rec activity.Record) activity.UnifiedActivity {
	ev, ok := asRow[models.SecurityEvent](rec)
	if !ok {
		return activity.UnifiedActivity{Category: a.category, SourceTable: rec.TableName()}
	}
	meta := metadataOf(ev.Metadata)
	return activity.UnifiedActivity{
		ID:          ev.ID,
		UserID:      ev.UserID,
		Category:    a.category,
		EventType:   ev.EventType,
		Activity:    a.Describe(ev.EventType, meta),
		Metadata:    meta,
		IPAddress:   ev.IPAddress,
		UserAgent:   ev.UserAgent,
		DeviceInfo:  ev.DeviceInfo,
		CreatedAt:   ev.CreatedAt,
		SourceTable: ev.TableName(),
	}
}

func (a *SecurityAdapter) Describe(eventType string, metadata activity.Metadata) string {
	switch eventType {
	case LoginSuccess:
		return "Signed in"
	case LoginFailed:
		if reason := metadata.Text("reason"); reason != "" {
			return "Failed sign-in attempt (" + reason + ")"
		}
		return "Failed sign-in attempt"
	case Logout:
		return "Signed out"
	case PasswordChanged:
		return "Changed password"
	case PasswordResetRequested:
		return "Requested a password reset"
	case PasswordResetCompleted:
		return "Reset password"
	case TwoFactorEnabled:
		if method := metadata.Text("method"); method != "" {
			return "Enabled two-factor authentication via " + method
		}
		return "Enabled two-factor authentication"
	case TwoFactorDisabled:
		return "Disabled two-factor authentication"
	case NewDeviceLogin:
		if device := metadata.Text("device"); device != "" {
			return "Signed in from a new device: " + device
		}
		return "Signed in from a new device"
	case AccountLocked:
		return "Account locked"
	case AccountUnlocked:
		return "Account unlocked"
	case EmailChanged:
		if email := metadata.Text("new_email"); email != "" {
			return "Changed email address to " + email
		}
		return "Changed email address"
	case SessionRevoked:
		return "Revoked a session"
	default:
		return activity.DefaultDescription(eventType)
	}
}
