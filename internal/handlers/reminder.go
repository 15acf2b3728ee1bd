package handlers

import (
	"context"
	"log"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/konnecta/weekend-api/internal/models"
	"github.com/konnecta/weekend-api/internal/notifier"
	"github.com/konnecta/weekend-api/internal/weekend"
	"gorm.io/gorm"
)

type ReminderHandler struct {
	db         *gorm.DB
	notifier   notifier.Notifier
	cronSecret string
}

func NewReminderHandler(db *gorm.DB, n notifier.Notifier, cronSecret string) *ReminderHandler {
	return &ReminderHandler{db: db, notifier: n, cronSecret: cronSecret}
}

type ReminderRequest struct {
	Authorization string `header:"Authorization"`
}

type ReminderResponse struct {
	Body struct {
		Message       string `json:"message,omitempty"`
		NotifiedCount int    `json:"notifiedCount,omitempty"`
	}
}

// HandleCronNotify is hit by an external scheduler. It reminds everyone who
// has not confirmed the upcoming weekend yet (no vote, or still "pending").
// Re-triggering before anyone responds re-sends to the same set; duplicate
// reminders are accepted behavior.
func (h *ReminderHandler) HandleCronNotify(ctx context.Context, input *ReminderRequest) (*ReminderResponse, error) {
	if h.cronSecret == "" || input.Authorization != "Bearer "+h.cronSecret {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	dateStr := weekend.FormatDBDate(weekend.UpcomingFriday(time.Now()))

	var profiles []models.Profile
	err := h.db.Where("one_signal_id IS NOT NULL AND one_signal_id <> ''").Find(&profiles).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load profiles")
	}

	res := &ReminderResponse{}
	if len(profiles) == 0 {
		res.Body.Message = "No users to notify"
		return res, nil
	}

	var plans []models.WeekendPlan
	if err := h.db.Where("weekend_date = ?", dateStr).Find(&plans).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load plans")
	}

	unconfirmed := weekend.UnconfirmedIDs(profiles, plans)
	if len(unconfirmed) == 0 {
		res.Body.Message = "Everyone has already confirmed"
		return res, nil
	}

	tokenByUser := make(map[string]string, len(profiles))
	for _, p := range profiles {
		tokenByUser[p.ID] = *p.OneSignalID
	}
	playerIDs := make([]string, 0, len(unconfirmed))
	for _, id := range unconfirmed {
		playerIDs = append(playerIDs, tokenByUser[id])
	}

	h.notifier.Notify(ctx, notifier.Notification{
		Heading:     "KONNECTA 🏡",
		Contents:    "Vens a Valls aquest cap de setmana? Actualitza el teu estat ara!",
		WeekendDate: dateStr,
		PlayerIDs:   playerIDs,
	})

	log.Printf("Weekend reminder sent to %d users for %s", len(playerIDs), dateStr)

	res.Body.NotifiedCount = len(playerIDs)
	return res, nil
}
