package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/konnecta/weekend-api/internal/auth"
)

func RegisterRoutes(
	r *chi.Mux,
	authHandler *auth.AuthHandler,
	plansHandler *PlansHandler,
	activitiesHandler *ActivitiesHandler,
	profileHandler *ProfileHandler,
	calendarHandler *CalendarHandler,
	reminderHandler *ReminderHandler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Session layer: refreshes near-expiry cookies and hands the user id to
	// Authorize. Enforcement stays with the operations.
	r.Use(authHandler.AuthMiddleware)

	// Initialize Huma API
	config := huma.DefaultConfig("Konnecta Weekend API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
	}
	api := humachi.New(r, config)

	withAuth := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/google/login", authHandler.HandleLogin)
	r.Get("/auth/google/callback", authHandler.HandleCallback)

	// Profile
	huma.Get(api, "/me", profileHandler.HandleMe, withAuth)
	huma.Put(api, "/me", profileHandler.HandleUpdateProfile, withAuth)
	huma.Put(api, "/me/push-token", profileHandler.HandleUpdatePushToken, withAuth)

	// Weekends and votes
	huma.Get(api, "/weekends", plansHandler.HandleListWeekends, withAuth)
	huma.Get(api, "/weekends/{date}", plansHandler.HandleWeekendOverview, withAuth)
	huma.Post(api, "/plans/status", plansHandler.HandleUpdateStatus, withAuth)
	huma.Post(api, "/plans/comment", plansHandler.HandleUpdateComment, withAuth)
	huma.Get(api, "/hall-of-fame", plansHandler.HandleHallOfFame, withAuth)

	// Activities
	huma.Get(api, "/weekends/{date}/activities", activitiesHandler.HandleListActivities, withAuth)
	huma.Post(api, "/activities", activitiesHandler.HandleCreateActivity, withAuth)
	huma.Put(api, "/activities/{id}", activitiesHandler.HandleUpdateActivity, withAuth)
	huma.Delete(api, "/activities/{id}", activitiesHandler.HandleDeleteActivity, withAuth)
	huma.Post(api, "/activities/{id}/participation", activitiesHandler.HandleParticipation, withAuth)

	// Calendar export. The .ics download is a plain route so calendar apps
	// can fetch it without a session.
	r.Get("/activities/{id}/calendar.ics", calendarHandler.HandleActivityICS)
	huma.Get(api, "/activities/{id}/calendar/google", calendarHandler.HandleGoogleCalendarLink, withAuth)

	// External scheduler trigger
	huma.Get(api, "/api/cron/notify", reminderHandler.HandleCronNotify)
}
