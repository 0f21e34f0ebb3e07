package sources

import (
	"gorm.io/gorm"

	"lendhub/internal/activity"
	"lendhub/internal/models"
)

// Onboarding event types.
const (
	OnboardingStarted     = "ONBOARDING_STARTED"
	StepCompleted         = "STEP_COMPLETED"
	StepSkipped           = "STEP_SKIPPED"
	KYCSubmitted          = "KYC_SUBMITTED"
	KYCApproved           = "KYC_APPROVED"
	KYCRejected           = "KYC_REJECTED"
	BankAccountLinked     = "BANK_ACCOUNT_LINKED"
	CreditCheckAuthorized = "CREDIT_CHECK_AUTHORIZED"
	ProfileCompleted      = "PROFILE_COMPLETED"
	OnboardingCompleted   = "ONBOARDING_COMPLETED"
)

var onboardingEventTypes = []string{
	OnboardingStarted, StepCompleted, StepSkipped,
	KYCSubmitted, KYCApproved, KYCRejected,
	BankAccountLinked, CreditCheckAuthorized,
	ProfileCompleted, OnboardingCompleted,
}

// OnboardingAdapter exposes onboarding_events.
type OnboardingAdapter struct {
	table[models.OnboardingEvent]
}

func NewOnboardingAdapter(db *gorm.DB) *OnboardingAdapter {
	a := &OnboardingAdapter{table: table[models.OnboardingEvent]{
		db:            db,
		name:          "onboarding",
		category:      activity.CategoryOnboarding,
		eventTypes:    onboardingEventTypes,
		searchColumns: []string{"step", "status"},
		scope:         byUser("user_id"),
	}}
	a.describe = a.Describe
	return a
}

func (a *OnboardingAdapter) Transform(rec activity.Record) activity.UnifiedActivity {
	ev, ok := asRow[models.OnboardingEvent](rec)
	if !ok {
		return activity.UnifiedActivity{Category: a.category, SourceTable: rec.TableName()}
	}
	meta := metadataOf(ev.Metadata)
	if ev.Step != "" {
		if _, set := meta["step"]; !set {
			meta["step"] = ev.Step
		}
	}
	return activity.UnifiedActivity{
		ID:          ev.ID,
		UserID:      ev.UserID,
		Category:    a.category,
		EventType:   ev.EventType,
		Activity:    a.Describe(ev.EventType, meta),
		Metadata:    meta,
		CreatedAt:   ev.CreatedAt,
		SourceTable: ev.TableName(),
	}
}

func (a *OnboardingAdapter) Describe(eventType string, metadata activity.Metadata) string {
	step := activity.DefaultDescription(metadata.Text("step"))
	switch eventType {
	case OnboardingStarted:
		return "Started onboarding"
	case StepCompleted:
		if step != "" {
			return "Completed onboarding step: " + step
		}
		return "Completed an onboarding step"
	case StepSkipped:
		if step != "" {
			return "Skipped onboarding step: " + step
		}
		return "Skipped an onboarding step"
	case KYCSubmitted:
		return "Submitted identity verification"
	case KYCApproved:
		return "Identity verification approved"
	case KYCRejected:
		if reason := metadata.Text("reason"); reason != "" {
			return "Identity verification rejected: " + reason
		}
		return "Identity verification rejected"
	case BankAccountLinked:
		if bank := metadata.Text("bank_name"); bank != "" {
			return "Linked bank account at " + bank
		}
		return "Linked a bank account"
	case CreditCheckAuthorized:
		return "Authorized a credit check"
	case ProfileCompleted:
		return "Completed profile"
	case OnboardingCompleted:
		return "Completed onboarding"
	default:
		return activity.DefaultDescription(eventType)
	}
}
