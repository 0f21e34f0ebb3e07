package testutil_test

import (
	"fmt"
	"testing"
	"time"

	"lendhub/internal/errors"
	"lendhub/internal/models"
	"lendhub/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{
		"users", "organizations", "organization_members",
		"security_events", "onboarding_events", "document_events",
		"access_events", "organization_events",
	} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	if err := second.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected an empty second database, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	org := testutil.CreateTestOrganization(t, db, user.ID)
	var member models.OrganizationMember
	if err := db.Where("organization_id = ? AND user_id = ?", org.ID, user.ID).First(&member).Error; err != nil {
		t.Fatalf("owner membership should exist: %v", err)
	}
	if member.Role != models.RoleOwner {
		t.Errorf("expected owner role, got %q", member.Role)
	}

	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	ev := testutil.CreateTestSecurityEvent(t, db, user.ID, "LOGIN_SUCCESS", at)
	if ev.ID == "" {
		t.Fatal("event should have an ID")
	}
	if !ev.CreatedAt.Equal(at) {
		t.Errorf("expected created_at %v, got %v", at, ev.CreatedAt)
	}

	access := testutil.CreateTestAccessEvent(t, db, user.ID, "", models.PortalBorrower, "PORTAL_ACCESSED", at)
	if access.OrganizationID != nil {
		t.Errorf("expected no organization, got %v", *access.OrganizationID)
	}

	orgEvent := testutil.CreateTestOrganizationEvent(t, db, org.ID, "", models.PortalLender, "SETTINGS_CHANGED", at)
	if orgEvent.ActorUserID != nil {
		t.Errorf("expected system actor, got %v", *orgEvent.ActorUserID)
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrValidation, "VALIDATION_ERROR")

	appErr := testutil.AssertAppError(t, errors.Wrap(errors.ErrUnauthorized, nil), "UNAUTHORIZED")
	if appErr.StatusCode != 401 {
		t.Errorf("expected status 401, got %d", appErr.StatusCode)
	}
}

func TestAppErrorOf(t *testing.T) {
	wrapped := fmt.Errorf("listing feed: %w", errors.ErrNotOrganizationMember)
	appErr, ok := testutil.AppErrorOf(wrapped)
	if !ok || appErr.Code != "NOT_ORGANIZATION_MEMBER" {
		t.Errorf("expected the member error through the chain, got %v %v", appErr, ok)
	}

	if _, ok := testutil.AppErrorOf(fmt.Errorf("plain")); ok {
		t.Error("plain errors carry no AppError")
	}
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
