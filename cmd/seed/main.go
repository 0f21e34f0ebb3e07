// Command seed populates a development database with a borrower, a lender
// organization and a spread of activity across every event source, then
// prints an access token for the borrower.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lendhub/internal/activity"
	"lendhub/internal/activity/sources"
	"lendhub/internal/config"
	"lendhub/internal/database"
	"lendhub/internal/logger"
	"lendhub/internal/middleware"
	"lendhub/internal/models"
	"lendhub/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	email := flag.String("email", "borrower@lendhub.dev", "email of the seeded borrower")
	password := flag.String("password", "password123", "password of the seeded borrower")
	days := flag.Int("days", 30, "spread events over this many days")
	flag.Parse()

	if err := run(*email, *password, *days); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run(email, password string, days int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	ctx := context.Background()

	user, err := findOrCreateUser(ctx, db, email, password)
	if err != nil {
		return err
	}

	org := &models.Organization{Name: "Lendhub Capital"}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         user.ID,
			Role:           models.RoleOwner,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	recorder := services.NewEventRecorder(db)
	n := seedEvents(ctx, recorder, user.ID, org.ID, email, days)

	token, err := middleware.GenerateAccessToken(user)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Get().Infow("Seed complete",
		"user_id", user.ID,
		"organization_id", org.ID,
		"events", n,
	)
	fmt.Printf("Authorization: Bearer %s\n", token)
	return nil
}

func findOrCreateUser(ctx context.Context, db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user = models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Dana",
		LastName:  "Borrower",
		IsActive:  true,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// seedEvents records a borrower journey from sign-up to signed agreement,
// oldest first, and returns the number of events written.
func seedEvents(ctx context.Context, recorder services.EventRecorder, userID, orgID, email string, days int) int {
	if days < 1 {
		days = 1
	}
	start := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	step := time.Duration(days) * 24 * time.Hour / 24
	at := func(i int) time.Time { return start.Add(time.Duration(i) * step) }

	ip := "203.0.113.7"
	agent := "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4)"
	docID := "0190a1b2-0000-7000-8000-000000000001"

	events := []activity.Record{
		&models.OnboardingEvent{EventBase: models.EventBase{CreatedAt: at(0)}, UserID: userID, EventType: sources.OnboardingStarted},
		&models.SecurityEvent{EventBase: models.EventBase{CreatedAt: at(1)}, UserID: userID, EventType: sources.LoginSuccess, IPAddress: &ip, UserAgent: &agent},
		&models.OnboardingEvent{EventBase: models.EventBase{CreatedAt: at(2)}, UserID: userID, EventType: sources.StepCompleted, Step: "profile", Status: "completed"},
		&models.OnboardingEvent{EventBase: models.EventBase{CreatedAt: at(3)}, UserID: userID, EventType: sources.KYCSubmitted, Step: "identity", Status: "pending"},
		&models.DocumentEvent{EventBase: models.EventBase{CreatedAt: at(4)}, UserID: userID, DocumentID: docID, DocumentName: "March pay stub.pdf", DocumentType: "pay_stub", EventType: sources.DocumentUploaded, IPAddress: &ip},
		&models.OnboardingEvent{EventBase: models.EventBase{CreatedAt: at(5)}, UserID: userID, EventType: sources.KYCApproved, Step: "identity", Status: "approved"},
		&models.SecurityEvent{EventBase: models.EventBase{CreatedAt: at(6)}, UserID: userID, EventType: sources.TwoFactorEnabled, Metadata: datatypes.JSONMap{"method": "totp"}},
		&models.OnboardingEvent{EventBase: models.EventBase{CreatedAt: at(7)}, UserID: userID, EventType: sources.BankAccountLinked, Step: "banking", Metadata: datatypes.JSONMap{"bank_name": "First Harbor Bank"}},
		&models.SecurityEvent{EventBase: models.EventBase{CreatedAt: at(8)}, UserID: userID, EventType: sources.LoginFailed, IPAddress: &ip, Metadata: datatypes.JSONMap{"reason": "invalid password"}},
		&models.OrganizationEvent{EventBase: models.EventBase{CreatedAt: at(9)}, OrganizationID: orgID, ActorUserID: &userID, Portal: models.PortalLender, EventType: sources.OrganizationCreated, Metadata: datatypes.JSONMap{"organization_name": "Lendhub Capital"}},
		&models.OrganizationEvent{EventBase: models.EventBase{CreatedAt: at(10)}, OrganizationID: orgID, ActorUserID: &userID, Portal: models.PortalLender, EventType: sources.MemberInvited, TargetEmail: "analyst@lendhub.dev"},
		&models.AccessEvent{EventBase: models.EventBase{CreatedAt: at(11)}, UserID: userID, OrganizationID: &orgID, Portal: models.PortalLender, EventType: sources.PortalAccessed, IPAddress: &ip, UserAgent: &agent},
		&models.DocumentEvent{EventBase: models.EventBase{CreatedAt: at(12)}, UserID: userID, DocumentID: docID, DocumentName: "March pay stub.pdf", DocumentType: "pay_stub", EventType: sources.DocumentApproved},
		&models.AccessEvent{EventBase: models.EventBase{CreatedAt: at(13)}, UserID: userID, OrganizationID: &orgID, Portal: models.PortalLender, Resource: "loan applications", EventType: sources.ExportRequested},
		&models.OnboardingEvent{EventBase: models.EventBase{CreatedAt: at(14)}, UserID: userID, EventType: sources.CreditCheckAuthorized, Step: "credit"},
		&models.OnboardingEvent{EventBase: models.EventBase{CreatedAt: at(15)}, UserID: userID, EventType: sources.OnboardingCompleted},
		&models.DocumentEvent{EventBase: models.EventBase{CreatedAt: at(16)}, UserID: userID, DocumentName: "Loan agreement.pdf", DocumentType: "agreement", EventType: sources.DocumentSigned, IPAddress: &ip},
		&models.SecurityEvent{EventBase: models.EventBase{CreatedAt: at(17)}, UserID: userID, EventType: sources.PasswordChanged, IPAddress: &ip},
		&models.OrganizationEvent{EventBase: models.EventBase{CreatedAt: at(18)}, OrganizationID: orgID, ActorUserID: &userID, Portal: models.PortalLender, EventType: sources.BillingUpdated, Metadata: datatypes.JSONMap{"amount": 4999, "currency": "USD"}},
		&models.SecurityEvent{EventBase: models.EventBase{CreatedAt: at(19)}, UserID: userID, EventType: sources.Logout},
	}

	for _, ev := range events {
		recorder.Record(ctx, ev)
	}
	recorder.RecordAccess(ctx, services.AccessRecord{
		UserID:         userID,
		OrganizationID: orgID,
		Portal:         models.PortalBorrower,
		Resource:       "dashboard",
		EventType:      sources.PortalAccessed,
		IPAddress:      ip,
		UserAgent:      agent,
		Metadata:       map[string]any{"email": email},
	})
	return len(events) + 1
}
