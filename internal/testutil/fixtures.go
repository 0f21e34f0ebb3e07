package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"lendhub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestOrganization creates an organization owned by ownerID.
func CreateTestOrganization(t *testing.T, db *gorm.DB, ownerID string) *models.Organization {
	t.Helper()

	org := &models.Organization{Name: fmt.Sprintf("Test Lender %d", nextID())}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organization: %v", err)
	}
	AddTestMember(t, db, org.ID, ownerID, models.RoleOwner)
	return org
}

// AddTestMember adds userID to the organization with role.
func AddTestMember(t *testing.T, db *gorm.DB, orgID, userID, role string) *models.OrganizationMember {
	t.Helper()

	member := &models.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: role}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to add test member: %v", err)
	}
	return member
}

// CreateTestRecord inserts any model and returns it.
func CreateTestRecord[T any](t *testing.T, db *gorm.DB, rec *T) *T {
	t.Helper()

	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create %T: %v", rec, err)
	}
	return rec
}

// CreateTestSecurityEvent creates a security event at the given time.
func CreateTestSecurityEvent(t *testing.T, db *gorm.DB, userID, eventType string, at time.Time) *models.SecurityEvent {
	t.Helper()

	ip := "203.0.113.7"
	ev := &models.SecurityEvent{
		EventBase: models.EventBase{CreatedAt: at.UTC()},
		UserID:    userID,
		EventType: eventType,
		IPAddress: &ip,
		Metadata:  datatypes.JSONMap{},
	}
	return CreateTestRecord(t, db, ev)
}

// CreateTestOnboardingEvent creates an onboarding event for step.
func CreateTestOnboardingEvent(t *testing.T, db *gorm.DB, userID, eventType, step string, at time.Time) *models.OnboardingEvent {
	t.Helper()

	ev := &models.OnboardingEvent{
		EventBase: models.EventBase{CreatedAt: at.UTC()},
		UserID:    userID,
		EventType: eventType,
		Step:      step,
		Status:    "completed",
		Metadata:  datatypes.JSONMap{},
	}
	return CreateTestRecord(t, db, ev)
}

// CreateTestDocumentEvent creates a document event for a document named name.
func CreateTestDocumentEvent(t *testing.T, db *gorm.DB, userID, eventType, name string, at time.Time) *models.DocumentEvent {
	t.Helper()

	ev := &models.DocumentEvent{
		EventBase:    models.EventBase{CreatedAt: at.UTC()},
		UserID:       userID,
		DocumentID:   fmt.Sprintf("00000000-0000-7000-8000-%012d", nextID()),
		DocumentName: name,
		DocumentType: "bank_statement",
		EventType:    eventType,
		Metadata:     datatypes.JSONMap{},
	}
	return CreateTestRecord(t, db, ev)
}

// CreateTestAccessEvent creates an access event. orgID may be empty.
func CreateTestAccessEvent(t *testing.T, db *gorm.DB, userID, orgID, portal, eventType string, at time.Time) *models.AccessEvent {
	t.Helper()

	ev := &models.AccessEvent{
		EventBase: models.EventBase{CreatedAt: at.UTC()},
		UserID:    userID,
		Portal:    portal,
		Resource:  "/loans",
		EventType: eventType,
		Metadata:  datatypes.JSONMap{},
	}
	if orgID != "" {
		ev.OrganizationID = &orgID
	}
	return CreateTestRecord(t, db, ev)
}

// CreateTestOrganizationEvent creates an organization event. actorID may be
// empty for system-initiated changes.
func CreateTestOrganizationEvent(t *testing.T, db *gorm.DB, orgID, actorID, portal, eventType string, at time.Time) *models.OrganizationEvent {
	t.Helper()

	ev := &models.OrganizationEvent{
		EventBase:      models.EventBase{CreatedAt: at.UTC()},
		OrganizationID: orgID,
		Portal:         portal,
		EventType:      eventType,
		TargetEmail:    fmt.Sprintf("invitee%d@test.com", nextID()),
		Metadata:       datatypes.JSONMap{},
	}
	if actorID != "" {
		ev.ActorUserID = &actorID
	}
	return CreateTestRecord(t, db, ev)
}
