package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/konnecta/weekend-api/internal/auth"
	"github.com/konnecta/weekend-api/internal/models"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewProfileHandler(db *gorm.DB, authHandler *auth.AuthHandler) *ProfileHandler {
	return &ProfileHandler{db: db, authHandler: authHandler}
}

type MeRequest struct {
	auth.AuthInput
}

type MeResponse struct {
	Body struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		FullName    string `json:"full_name,omitempty"`
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url,omitempty"`
		PushEnabled bool   `json:"push_enabled"`
	}
}

func (h *ProfileHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := h.db.First(&profile, "id = ?", userID).Error; err != nil {
		return nil, huma.Error404NotFound("Profile not found")
	}

	res := &MeResponse{}
	res.Body.ID = profile.ID
	res.Body.Email = profile.Email
	res.Body.FullName = profile.FullName
	res.Body.DisplayName = profile.DisplayName()
	res.Body.AvatarURL = profile.AvatarURL
	res.Body.PushEnabled = profile.HasPushToken()
	return res, nil
}

type UpdateProfileRequest struct {
	auth.AuthInput
	Body struct {
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	}
}

func (h *ProfileHandler) HandleUpdateProfile(ctx context.Context, input *UpdateProfileRequest) (*ActionResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	err = h.db.Model(&models.Profile{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"full_name":  input.Body.FullName,
			"avatar_url": input.Body.AvatarURL,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to update profile")
	}

	res := &ActionResponse{}
	res.Body.Message = "Profile updated"
	return res, nil
}

type UpdatePushTokenRequest struct {
	auth.AuthInput
	Body struct {
		PlayerID string `json:"player_id" doc:"OneSignal player id; empty clears the token"`
	}
}

// HandleUpdatePushToken registers (or clears) the viewer's push token. The
// token column here is the authoritative record of who can be notified; the
// client-side permission state is never trusted.
func (h *ProfileHandler) HandleUpdatePushToken(ctx context.Context, input *UpdatePushTokenRequest) (*ActionResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var value interface{}
	if input.Body.PlayerID != "" {
		value = input.Body.PlayerID
	}

	err = h.db.Model(&models.Profile{}).Where("id = ?", userID).
		Update("one_signal_id", value).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to update push token")
	}

	res := &ActionResponse{}
	res.Body.Message = "Push token updated"
	return res, nil
}
