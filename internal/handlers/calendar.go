package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/konnecta/weekend-api/internal/auth"
	"github.com/konnecta/weekend-api/internal/models"
	"github.com/konnecta/weekend-api/internal/weekend"
	"gorm.io/gorm"
)

const (
	calendarLocation = "Valls"
	calendarTag      = "[Komando]"
)

type CalendarHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewCalendarHandler(db *gorm.DB, authHandler *auth.AuthHandler) *CalendarHandler {
	return &CalendarHandler{db: db, authHandler: authHandler}
}

// HandleActivityICS serves an activity as a downloadable .ics file so it
// can be added to any calendar app. Registered as a plain chi route since
// the response is a file, not JSON.
func (h *CalendarHandler) HandleActivityICS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var activity models.Activity
	if err := h.db.First(&activity, "id = ?", id).Error; err != nil {
		http.Error(w, "Activity not found", http.StatusNotFound)
		return
	}

	ics, err := buildICS(activity, time.Now())
	if err != nil {
		http.Error(w, "Failed to build calendar event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="activity.ics"`)
	w.Write([]byte(ics))
}

func buildICS(activity models.Activity, now time.Time) (string, error) {
	start, end, err := weekend.EventWindow(activity)
	if err != nil {
		return "", err
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Konnecta//NONSGML Event//EN",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@konnecta.app", activity.ID),
		"DTSTAMP:" + formatICSDate(now),
		"DTSTART:" + formatICSDate(start),
		"DTEND:" + formatICSDate(end),
		fmt.Sprintf("SUMMARY:%s %s", escapeICS(activity.Title), calendarTag),
		"DESCRIPTION:" + escapeICS(activity.Description),
		"LOCATION:" + calendarLocation,
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n"), nil
}

func formatICSDate(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// Backslashes, commas and semicolons are meaningful in ICS text values.
func escapeICS(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, ",", `\,`, ";", `\;`)
	return replacer.Replace(s)
}

type GoogleCalendarLinkRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

type GoogleCalendarLinkResponse struct {
	Body struct {
		URL string `json:"url"`
	}
}

// HandleGoogleCalendarLink builds the Google Calendar "add event" URL for
// an activity.
func (h *CalendarHandler) HandleGoogleCalendarLink(ctx context.Context, input *GoogleCalendarLinkRequest) (*GoogleCalendarLinkResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var activity models.Activity
	if err := h.db.First(&activity, "id = ?", input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("No s'ha trobat el pla")
	}

	start, end, err := weekend.EventWindow(activity)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to build calendar event")
	}

	const layout = "20060102T150405"
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", activity.Title+" "+calendarTag)
	params.Set("details", activity.Description)
	params.Set("location", calendarLocation)
	params.Set("dates", start.Format(layout)+"/"+end.Format(layout))

	res := &GoogleCalendarLinkResponse{}
	res.Body.URL = "https://calendar.google.com/calendar/render?" + params.Encode()
	return res, nil
}
