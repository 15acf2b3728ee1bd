package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/konnecta/weekend-api/internal/auth"
	"github.com/konnecta/weekend-api/internal/config"
	"github.com/konnecta/weekend-api/internal/models"
	"github.com/konnecta/weekend-api/internal/notifier"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Profile{},
		&models.WeekendPlan{},
		&models.Activity{},
		&models.ActivityParticipant{},
	)
	if err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}
	return db
}

func newAuthHandler(db *gorm.DB) *auth.AuthHandler {
	return auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)
}

func createProfile(t *testing.T, db *gorm.DB, id, email string, pushToken *string) models.Profile {
	t.Helper()
	profile := models.Profile{ID: id, Email: email, OneSignalID: pushToken}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile %s: %v", id, err)
	}
	return profile
}

func cookieFor(t *testing.T, authHandler *auth.AuthHandler, userID string) string {
	t.Helper()
	token, err := authHandler.GenerateToken(userID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return "auth_token=" + token
}

func pushToken(s string) *string { return &s }

// recordingNotifier captures fan-out calls so tests can assert on them.
// The channel covers the fire-and-forget dispatches that run in their own
// goroutine.
type recordingNotifier struct {
	mu            sync.Mutex
	notifications []notifier.Notification
	ch            chan notifier.Notification
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan notifier.Notification, 8)}
}

func (r *recordingNotifier) Notify(ctx context.Context, n notifier.Notification) {
	r.mu.Lock()
	r.notifications = append(r.notifications, n)
	r.mu.Unlock()
	select {
	case r.ch <- n:
	default:
	}
}

func (r *recordingNotifier) recorded() []notifier.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifier.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}
