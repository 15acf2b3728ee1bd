package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/konnecta/weekend-api/internal/auth"
	"github.com/konnecta/weekend-api/internal/models"
)

type HallOfFameRequest struct {
	auth.AuthInput
}

type HallOfFameEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	VisitCount int64  `json:"visit_count"`
}

type HallOfFameResponse struct {
	Body []HallOfFameEntry
}

// HandleHallOfFame ranks the roster by how many weekends each user has
// confirmed "going" across all time.
func (h *PlansHandler) HandleHallOfFame(ctx context.Context, input *HallOfFameRequest) (*HallOfFameResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var rows []struct {
		ID         string
		FullName   string
		Email      string
		AvatarURL  string
		VisitCount int64
	}
	err := h.db.Table("weekend_plans").
		Select("profiles.id AS id, profiles.full_name AS full_name, profiles.email AS email, profiles.avatar_url AS avatar_url, COUNT(*) AS visit_count").
		Joins("JOIN profiles ON profiles.id = weekend_plans.user_id").
		Where("weekend_plans.status = ?", models.StatusGoing).
		Group("profiles.id").
		Order("visit_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load hall of fame")
	}

	entries := make([]HallOfFameEntry, 0, len(rows))
	for _, row := range rows {
		profile := models.Profile{FullName: row.FullName, Email: row.Email}
		entries = append(entries, HallOfFameEntry{
			ID:         row.ID,
			Name:       profile.DisplayName(),
			AvatarURL:  row.AvatarURL,
			VisitCount: row.VisitCount,
		})
	}

	return &HallOfFameResponse{Body: entries}, nil
}
