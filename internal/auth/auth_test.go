package auth

import (
	"context"
	"testing"

	"github.com/konnecta/weekend-api/internal/config"
	"github.com/konnecta/weekend-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAuthorize(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&models.Profile{})

	profile := models.Profile{
		ID:       "11111111-1111-1111-1111-111111111111",
		Email:    "test@example.com",
		FullName: "Test User",
	}
	db.Create(&profile)

	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, db)

	t.Run("ValidToken", func(t *testing.T) {
		token, err := handler.GenerateToken(profile.ID)
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}

		userID, err := handler.Authorize(context.Background(), "auth_token="+token)
		if err != nil {
			t.Fatalf("Authorize returned error: %v", err)
		}
		if userID != profile.ID {
			t.Errorf("expected user id %s, got %s", profile.ID, userID)
		}
	})

	t.Run("NoCookie", func(t *testing.T) {
		_, err := handler.Authorize(context.Background(), "")
		if err == nil {
			t.Fatal("expected error for missing cookie, got nil")
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		_, err := handler.Authorize(context.Background(), "auth_token=not-a-jwt")
		if err == nil {
			t.Fatal("expected error for garbage token, got nil")
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewAuthHandler(&config.Config{JWTSecret: "other-secret"}, db)
		token, _ := other.GenerateToken(profile.ID)

		_, err := handler.Authorize(context.Background(), "auth_token="+token)
		if err == nil {
			t.Fatal("expected error for token signed with wrong secret, got nil")
		}
	})
}

func TestEmailAllowed(t *testing.T) {
	open := NewAuthHandler(&config.Config{}, nil)
	if !open.emailAllowed("anyone@example.com") {
		t.Error("empty allow-list should admit everyone")
	}

	closed := NewAuthHandler(&config.Config{
		AllowedEmails: []string{"anna@example.com", "joan@example.com"},
	}, nil)
	if !closed.emailAllowed("anna@example.com") {
		t.Error("listed email should be admitted")
	}
	if closed.emailAllowed("stranger@example.com") {
		t.Error("unlisted email should be rejected")
	}
}
