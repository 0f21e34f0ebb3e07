package services

import (
	"context"
	"testing"
	"time"

	"lendhub/internal/activity/sources"
	"lendhub/internal/models"
	"lendhub/internal/testutil"
)

func TestEventRecorderRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	user := testutil.CreateTestUser(t, db)
	rec := NewEventRecorder(db)
	ctx := context.Background()

	at := time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)
	rec.Record(ctx, &models.OnboardingEvent{
		EventBase: models.EventBase{CreatedAt: at},
		UserID:    user.ID,
		EventType: sources.KYCSubmitted,
		Step:      "identity",
	})

	var stored models.OnboardingEvent
	if err := db.Where("user_id = ?", user.ID).First(&stored).Error; err != nil {
		t.Fatalf("expected the event to be stored: %v", err)
	}
	if stored.ID == "" || !stored.CreatedAt.Equal(at) {
		t.Errorf("unexpected stored event %+v", stored)
	}

	// Values are not pointers to a source model and are skipped.
	rec.Record(ctx, models.SecurityEvent{UserID: user.ID, EventType: sources.Logout})

	var count int64
	db.Model(&models.SecurityEvent{}).Count(&count)
	if count != 0 {
		t.Errorf("expected unsupported records to be skipped, found %d", count)
	}
}

func TestEventRecorderRecordAccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	user := testutil.CreateTestUser(t, db)
	org := testutil.CreateTestOrganization(t, db, user.ID)

	NewEventRecorder(db).RecordAccess(context.Background(), AccessRecord{
		UserID:         user.ID,
		OrganizationID: org.ID,
		Portal:         models.PortalLender,
		Resource:       "/api/v1/organizations/" + org.ID + "/activities",
		EventType:      "resource_viewed",
		IPAddress:      "198.51.100.4",
	})

	var stored models.AccessEvent
	if err := db.Where("user_id = ?", user.ID).First(&stored).Error; err != nil {
		t.Fatalf("expected the access to be stored: %v", err)
	}
	if stored.EventType != sources.ResourceViewed {
		t.Errorf("expected normalized event type, got %q", stored.EventType)
	}
	if stored.OrganizationID == nil || *stored.OrganizationID != org.ID {
		t.Errorf("expected organization %s, got %v", org.ID, stored.OrganizationID)
	}
	if stored.IPAddress == nil || *stored.IPAddress != "198.51.100.4" {
		t.Errorf("unexpected ip %v", stored.IPAddress)
	}
	if stored.UserAgent != nil {
		t.Errorf("expected no user agent, got %q", *stored.UserAgent)
	}
}
