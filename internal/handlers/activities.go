package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/konnecta/weekend-api/internal/auth"
	"github.com/konnecta/weekend-api/internal/models"
	"github.com/konnecta/weekend-api/internal/notifier"
	"github.com/konnecta/weekend-api/internal/weekend"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivitiesHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewActivitiesHandler(db *gorm.DB, n notifier.Notifier, authHandler *auth.AuthHandler) *ActivitiesHandler {
	return &ActivitiesHandler{db: db, notifier: n, authHandler: authHandler}
}

type CreateActivityRequest struct {
	auth.AuthInput
	Body struct {
		Title       string           `json:"title" doc:"Title of the activity" required:"true"`
		Description string           `json:"description,omitempty"`
		WeekendDate string           `json:"weekend_date" doc:"Friday anchor date (YYYY-MM-DD)" required:"true"`
		DayOfWeek   models.DayOfWeek `json:"day_of_week" doc:"divendres, dissabte or diumenge" required:"true"`
		StartTime   string           `json:"start_time,omitempty" doc:"Start time (HH:MM)"`
	}
}

type ActivityResponse struct {
	Body struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
}

// HandleCreateActivity proposes a sub-event for a weekend and fans the news
// out to everyone except the creator. The push is fire-and-forget: a slow
// or failed send never delays or fails the creation.
func (h *ActivitiesHandler) HandleCreateActivity(ctx context.Context, input *CreateActivityRequest) (*ActivityResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Body.Title)
	if title == "" {
		return nil, huma.Error400BadRequest("El títol és obligatori")
	}
	anchor, err := weekend.ParseDBDate(input.Body.WeekendDate)
	if err != nil || anchor.Weekday() != time.Friday {
		return nil, huma.Error400BadRequest("Invalid weekend date: must be a Friday anchor")
	}
	if !models.ValidDayOfWeek(input.Body.DayOfWeek) {
		return nil, huma.Error400BadRequest("Invalid day of week")
	}
	if input.Body.StartTime != "" {
		if _, err := time.Parse("15:04", input.Body.StartTime); err != nil {
			return nil, huma.Error400BadRequest("Invalid start time")
		}
	}

	activity := models.Activity{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Body.Description,
		WeekendDate: input.Body.WeekendDate,
		DayOfWeek:   input.Body.DayOfWeek,
		StartTime:   input.Body.StartTime,
		CreatorID:   userID,
	}

	if err := h.db.Create(&activity).Error; err != nil {
		return nil, huma.Error500InternalServerError("No s'ha pogut crear el pla")
	}

	go h.notifyActivityCreated(activity, userID)

	res := &ActivityResponse{}
	res.Body.ID = activity.ID
	res.Body.Message = "Activity created"
	return res, nil
}

func (h *ActivitiesHandler) notifyActivityCreated(activity models.Activity, creatorID string) {
	var creator models.Profile
	if err := h.db.First(&creator, "id = ?", creatorID).Error; err != nil {
		return
	}

	now := time.Now()
	dayText := weekend.DayText(activity.WeekendDate, activity.DayOfWeek, now)
	connector := "pel"
	if weekend.IsUpcoming(activity.WeekendDate, now) {
		connector = ""
	}

	contents := fmt.Sprintf("%s ha proposat: %s %s %s. T'apuntes?",
		creator.DisplayName(), activity.Title, connector, dayText)
	contents = strings.Join(strings.Fields(contents), " ")

	h.notifier.Notify(context.Background(), notifier.Notification{
		Heading:       "Nou pla proposat! 📝",
		Contents:      contents,
		WeekendDate:   activity.WeekendDate,
		ExcludeUserID: creatorID,
	})
}

type UpdateActivityRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		Title       string           `json:"title" required:"true"`
		Description string           `json:"description,omitempty"`
		DayOfWeek   models.DayOfWeek `json:"day_of_week" required:"true"`
		StartTime   string           `json:"start_time,omitempty"`
	}
}

// HandleUpdateActivity edits an activity. Only the creator may edit; the
// creator check is part of the UPDATE predicate so no row ever mutates for
// anybody else.
func (h *ActivitiesHandler) HandleUpdateActivity(ctx context.Context, input *UpdateActivityRequest) (*ActionResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Body.Title)
	if title == "" {
		return nil, huma.Error400BadRequest("El títol és obligatori")
	}
	if !models.ValidDayOfWeek(input.Body.DayOfWeek) {
		return nil, huma.Error400BadRequest("Invalid day of week")
	}
	if input.Body.StartTime != "" {
		if _, err := time.Parse("15:04", input.Body.StartTime); err != nil {
			return nil, huma.Error400BadRequest("Invalid start time")
		}
	}

	result := h.db.Model(&models.Activity{}).
		Where("id = ? AND creator_id = ?", input.ID, userID).
		Updates(map[string]interface{}{
			"title":       title,
			"description": input.Body.Description,
			"day_of_week": input.Body.DayOfWeek,
			"start_time":  input.Body.StartTime,
		})
	if result.Error != nil {
		return nil, huma.Error500InternalServerError("No s'ha pogut actualitzar el pla")
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("No s'ha trobat el pla o no en ets el creador")
	}

	res := &ActionResponse{}
	res.Body.Message = "Activity updated"
	return res, nil
}

type DeleteActivityRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *ActivitiesHandler) HandleDeleteActivity(ctx context.Context, input *DeleteActivityRequest) (*ActionResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var deleted int64
	err = h.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND creator_id = ?", input.ID, userID).Delete(&models.Activity{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		if deleted == 0 {
			return nil
		}
		return tx.Where("activity_id = ?", input.ID).Delete(&models.ActivityParticipant{}).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("No s'ha pogut esborrar el pla")
	}
	if deleted == 0 {
		return nil, huma.Error404NotFound("No s'ha trobat el pla o no en ets el creador")
	}

	res := &ActionResponse{}
	res.Body.Message = "Activity deleted"
	return res, nil
}

type ListActivitiesRequest struct {
	auth.AuthInput
	Date string `path:"date" doc:"Friday anchor date (YYYY-MM-DD)"`
}

type ParticipantView struct {
	UserID                 string `json:"user_id"`
	Name                   string `json:"name"`
	AvatarURL              string `json:"avatar_url,omitempty"`
	AdditionalParticipants int    `json:"additional_participants"`
}

type ActivityView struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	WeekendDate     string            `json:"weekend_date"`
	DayOfWeek       models.DayOfWeek  `json:"day_of_week"`
	DayText         string            `json:"day_text"`
	StartTime       string            `json:"start_time,omitempty"`
	CreatorID       string            `json:"creator_id"`
	IsJoined        bool              `json:"is_joined"`
	TotalAttendance int               `json:"total_attendance"`
	Participants    []ParticipantView `json:"participants"`
}

type ListActivitiesResponse struct {
	Body []ActivityView
}

// HandleListActivities lists a weekend's activities with each one summarized
// for the viewer: whether they joined and how many people are coming in
// total, guests included.
func (h *ActivitiesHandler) HandleListActivities(ctx context.Context, input *ListActivitiesRequest) (*ListActivitiesResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if _, err := weekend.ParseDBDate(input.Date); err != nil {
		return nil, huma.Error400BadRequest("Invalid weekend date")
	}

	var activities []models.Activity
	err = h.db.Preload("Participants.Profile").
		Where("weekend_date = ?", input.Date).
		Order("created_at").
		Find(&activities).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load activities")
	}

	now := time.Now()
	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		summary := weekend.Summarize(a.Participants, userID)

		participants := make([]ParticipantView, 0, len(a.Participants))
		for _, p := range a.Participants {
			participants = append(participants, ParticipantView{
				UserID:                 p.UserID,
				Name:                   p.Profile.DisplayName(),
				AvatarURL:              p.Profile.AvatarURL,
				AdditionalParticipants: p.AdditionalParticipants,
			})
		}

		views = append(views, ActivityView{
			ID:              a.ID,
			Title:           a.Title,
			Description:     a.Description,
			WeekendDate:     a.WeekendDate,
			DayOfWeek:       a.DayOfWeek,
			DayText:         weekend.DayText(a.WeekendDate, a.DayOfWeek, now),
			StartTime:       a.StartTime,
			CreatorID:       a.CreatorID,
			IsJoined:        summary.IsJoined,
			TotalAttendance: summary.TotalAttendance,
			Participants:    participants,
		})
	}

	return &ListActivitiesResponse{Body: views}, nil
}

type ParticipationRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		Action                 string `json:"action" doc:"join, leave or set_guests" required:"true"`
		AdditionalParticipants int    `json:"additional_participants,omitempty" doc:"Guest count, 0 or 1" minimum:"0"`
	}
}

// HandleParticipation toggles the viewer's join row on an activity. Joining
// upserts against the (activity, user) unique key, so joining twice can
// never produce two rows; set_guests touches only the viewer's own row and
// is a no-op if they never joined.
func (h *ActivitiesHandler) HandleParticipation(ctx context.Context, input *ParticipationRequest) (*ActionResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if input.Body.AdditionalParticipants < 0 {
		return nil, huma.Error400BadRequest("Invalid guest count")
	}

	res := &ActionResponse{}

	switch input.Body.Action {
	case "join":
		var activity models.Activity
		if err := h.db.First(&activity, "id = ?", input.ID).Error; err != nil {
			return nil, huma.Error404NotFound("No s'ha trobat el pla")
		}

		participant := models.ActivityParticipant{
			ActivityID:             input.ID,
			UserID:                 userID,
			AdditionalParticipants: input.Body.AdditionalParticipants,
		}
		err = h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "activity_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"additional_participants"}),
		}).Create(&participant).Error
		if err != nil {
			return nil, huma.Error500InternalServerError("No s'ha pogut actualitzar la participació")
		}

		go h.notifyJoined(activity, userID, input.Body.AdditionalParticipants)
		res.Body.Message = "Joined"

	case "leave":
		err = h.db.Where("activity_id = ? AND user_id = ?", input.ID, userID).
			Delete(&models.ActivityParticipant{}).Error
		if err != nil {
			return nil, huma.Error500InternalServerError("No s'ha pogut actualitzar la participació")
		}
		res.Body.Message = "Left"

	case "set_guests":
		result := h.db.Model(&models.ActivityParticipant{}).
			Where("activity_id = ? AND user_id = ?", input.ID, userID).
			Update("additional_participants", input.Body.AdditionalParticipants)
		if result.Error != nil {
			return nil, huma.Error500InternalServerError("No s'ha pogut actualitzar la participació")
		}
		if result.RowsAffected == 0 {
			res.Body.Message = "Not joined, nothing to update"
		} else {
			res.Body.Message = "Guests updated"
		}

	default:
		return nil, huma.Error400BadRequest("Invalid action")
	}

	return res, nil
}

func (h *ActivitiesHandler) notifyJoined(activity models.Activity, userID string, guests int) {
	var profile models.Profile
	if err := h.db.First(&profile, "id = ?", userID).Error; err != nil {
		return
	}

	now := time.Now()
	dayText := weekend.DayText(activity.WeekendDate, activity.DayOfWeek, now)
	connector := "pel"
	if weekend.IsUpcoming(activity.WeekendDate, now) {
		connector = "per"
	}

	guestText := ""
	if guests > 0 {
		guestText = fmt.Sprintf(" (+%d)", guests)
	}

	h.notifier.Notify(context.Background(), notifier.Notification{
		Heading: "Això s'anima!🚀",
		Contents: fmt.Sprintf("%s%s s'ha apuntat al pla \"%s\" %s %s.",
			profile.DisplayName(), guestText, activity.Title, connector, dayText),
		WeekendDate:   activity.WeekendDate,
		ExcludeUserID: userID,
	})
}
