package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/konnecta/weekend-api/internal/auth"
	"github.com/konnecta/weekend-api/internal/models"
	"github.com/konnecta/weekend-api/internal/notifier"
	"github.com/konnecta/weekend-api/internal/weekend"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxCommentLength = 140

type PlansHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewPlansHandler(db *gorm.DB, n notifier.Notifier, authHandler *auth.AuthHandler) *PlansHandler {
	return &PlansHandler{db: db, notifier: n, authHandler: authHandler}
}

type UpdateStatusRequest struct {
	auth.AuthInput
	Body struct {
		WeekendDate string            `json:"weekend_date" doc:"Friday anchor date (YYYY-MM-DD)" required:"true"`
		Status      models.PlanStatus `json:"status" doc:"going, not_going or pending" required:"true"`
		Comment     string            `json:"comment,omitempty" doc:"Optional comment shown next to the vote" maxLength:"140"`
	}
}

type ActionResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// HandleUpdateStatus records the viewer's answer for one weekend. Voting
// again overwrites: the (user, weekend date) pair is unique and the write
// is an upsert-on-conflict, so concurrent votes just race to the same row.
func (h *PlansHandler) HandleUpdateStatus(ctx context.Context, input *UpdateStatusRequest) (*ActionResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if _, err := weekend.ParseDBDate(input.Body.WeekendDate); err != nil {
		return nil, huma.Error400BadRequest("Invalid weekend date")
	}
	if !models.ValidPlanStatus(input.Body.Status) {
		return nil, huma.Error400BadRequest("Invalid status")
	}
	if len(input.Body.Comment) > maxCommentLength {
		return nil, huma.Error400BadRequest("Comment is too long")
	}

	plan := models.WeekendPlan{
		UserID:      userID,
		WeekendDate: input.Body.WeekendDate,
		Status:      input.Body.Status,
		Comment:     input.Body.Comment,
		UpdatedAt:   time.Now(),
	}

	err = h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "weekend_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "comment", "updated_at"}),
	}).Create(&plan).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to update status")
	}

	res := &ActionResponse{}
	res.Body.Message = "Status updated"
	return res, nil
}

type UpdateCommentRequest struct {
	auth.AuthInput
	Body struct {
		WeekendDate string `json:"weekend_date" required:"true"`
		Comment     string `json:"comment" maxLength:"140"`
	}
}

// HandleUpdateComment changes only the comment on the viewer's own vote.
// Without a vote yet the comment rides on a fresh "pending" row.
func (h *PlansHandler) HandleUpdateComment(ctx context.Context, input *UpdateCommentRequest) (*ActionResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if _, err := weekend.ParseDBDate(input.Body.WeekendDate); err != nil {
		return nil, huma.Error400BadRequest("Invalid weekend date")
	}
	if len(input.Body.Comment) > maxCommentLength {
		return nil, huma.Error400BadRequest("Comment is too long")
	}

	plan := models.WeekendPlan{
		UserID:      userID,
		WeekendDate: input.Body.WeekendDate,
		Status:      models.StatusPending,
		Comment:     input.Body.Comment,
		UpdatedAt:   time.Now(),
	}

	err = h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "weekend_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"comment", "updated_at"}),
	}).Create(&plan).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to update comment")
	}

	res := &ActionResponse{}
	res.Body.Message = "Comment updated"
	return res, nil
}

type WeekendOverviewRequest struct {
	auth.AuthInput
	Date string `path:"date" doc:"Friday anchor date (YYYY-MM-DD)"`
}

type AttendeeView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

type WeekendOverviewResponse struct {
	Body struct {
		WeekendDate   string         `json:"weekend_date"`
		IsUpcoming    bool           `json:"is_upcoming"`
		ViewerStatus  string         `json:"viewer_status"`
		ViewerComment string         `json:"viewer_comment,omitempty"`
		Going         []AttendeeView `json:"going"`
		NotGoing      []AttendeeView `json:"not_going"`
		Pending       []AttendeeView `json:"pending"`
		Unanswered    []AttendeeView `json:"unanswered"`
	}
}

// HandleWeekendOverview partitions the whole roster into the four status
// buckets for one weekend, plus the viewer's own vote and comment.
func (h *PlansHandler) HandleWeekendOverview(ctx context.Context, input *WeekendOverviewRequest) (*WeekendOverviewResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if _, err := weekend.ParseDBDate(input.Date); err != nil {
		return nil, huma.Error400BadRequest("Invalid weekend date")
	}

	var roster []models.Profile
	if err := h.db.Find(&roster).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load roster")
	}

	var plans []models.WeekendPlan
	if err := h.db.Where("weekend_date = ?", input.Date).Find(&plans).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load plans")
	}

	commentByUser := make(map[string]string, len(plans))
	for _, p := range plans {
		commentByUser[p.UserID] = p.Comment
	}

	buckets := weekend.PartitionByStatus(roster, plans)

	res := &WeekendOverviewResponse{}
	res.Body.WeekendDate = input.Date
	res.Body.IsUpcoming = weekend.IsUpcoming(input.Date, time.Now())
	res.Body.Going = attendeeViews(buckets.Going, commentByUser)
	res.Body.NotGoing = attendeeViews(buckets.NotGoing, commentByUser)
	res.Body.Pending = attendeeViews(buckets.Pending, commentByUser)
	res.Body.Unanswered = attendeeViews(buckets.Unanswered, commentByUser)

	res.Body.ViewerStatus = "unanswered"
	for _, p := range plans {
		if p.UserID == userID {
			res.Body.ViewerStatus = string(p.Status)
			res.Body.ViewerComment = p.Comment
			break
		}
	}

	return res, nil
}

func attendeeViews(profiles []models.Profile, commentByUser map[string]string) []AttendeeView {
	views := make([]AttendeeView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, AttendeeView{
			ID:        p.ID,
			Name:      p.DisplayName(),
			AvatarURL: p.AvatarURL,
			Comment:   commentByUser[p.ID],
		})
	}
	return views
}

type ListWeekendsRequest struct {
	auth.AuthInput
}

type WeekendView struct {
	Date       string `json:"date"`
	IsUpcoming bool   `json:"is_upcoming"`
}

type ListWeekendsResponse struct {
	Body []WeekendView
}

// HandleListWeekends feeds the weekend selector: the next ten Friday anchors.
func (h *PlansHandler) HandleListWeekends(ctx context.Context, input *ListWeekendsRequest) (*ListWeekendsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	now := time.Now()
	anchors := weekend.NextFridays(10, weekend.UpcomingFriday(now))

	views := make([]WeekendView, 0, len(anchors))
	for _, anchor := range anchors {
		date := weekend.FormatDBDate(anchor)
		views = append(views, WeekendView{Date: date, IsUpcoming: weekend.IsUpcoming(date, now)})
	}

	return &ListWeekendsResponse{Body: views}, nil
}
