package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/konnecta/weekend-api/internal/auth"
	"github.com/konnecta/weekend-api/internal/config"
	"github.com/konnecta/weekend-api/internal/database"
	"github.com/konnecta/weekend-api/internal/handlers"
	"github.com/konnecta/weekend-api/internal/notifier"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Notifier
	pushNotifier := notifier.NewOneSignalNotifier(cfg, db)

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	plansHandler := handlers.NewPlansHandler(db, pushNotifier, authHandler)
	activitiesHandler := handlers.NewActivitiesHandler(db, pushNotifier, authHandler)
	profileHandler := handlers.NewProfileHandler(db, authHandler)
	calendarHandler := handlers.NewCalendarHandler(db, authHandler)
	reminderHandler := handlers.NewReminderHandler(db, pushNotifier, cfg.CronSecret)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, plansHandler, activitiesHandler, profileHandler, calendarHandler, reminderHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
