package models

import "time"

type DayOfWeek string

const (
	DayDivendres DayOfWeek = "divendres"
	DayDissabte  DayOfWeek = "dissabte"
	DayDiumenge  DayOfWeek = "diumenge"
)

// AnchorOffset is the number of days between the weekend's Friday anchor
// and the given day.
func (d DayOfWeek) AnchorOffset() int {
	switch d {
	case DayDissabte:
		return 1
	case DayDiumenge:
		return 2
	}
	return 0
}

func ValidDayOfWeek(d DayOfWeek) bool {
	switch d {
	case DayDivendres, DayDissabte, DayDiumenge:
		return true
	}
	return false
}

// Activity is a proposed sub-event within a weekend.
type Activity struct {
	ID           string                `gorm:"primaryKey" json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	WeekendDate  string                `gorm:"index" json:"weekend_date"`
	DayOfWeek    DayOfWeek             `json:"day_of_week"`
	StartTime    string                `json:"start_time"`
	CreatorID    string                `json:"creator_id"`
	Participants []ActivityParticipant `gorm:"foreignKey:ActivityID" json:"participants,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"-"`
}
