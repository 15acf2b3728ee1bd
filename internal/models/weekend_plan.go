package models

import "time"

type PlanStatus string

const (
	StatusGoing    PlanStatus = "going"
	StatusNotGoing PlanStatus = "not_going"
	StatusPending  PlanStatus = "pending"
)

// ValidPlanStatus reports whether s is one of the three stored statuses.
// "Unanswered" is never stored; it is the absence of a row.
func ValidPlanStatus(s PlanStatus) bool {
	switch s {
	case StatusGoing, StatusNotGoing, StatusPending:
		return true
	}
	return false
}

// WeekendPlan is a user's answer to "are you coming this weekend".
// At most one row exists per (user, weekend date); re-voting overwrites.
type WeekendPlan struct {
	UserID      string     `gorm:"primaryKey" json:"user_id"`
	WeekendDate string     `gorm:"primaryKey" json:"weekend_date"`
	Status      PlanStatus `json:"status"`
	Comment     string     `json:"comment"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
