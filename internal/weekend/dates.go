package weekend

import (
	"fmt"
	"time"

	"github.com/konnecta/weekend-api/internal/models"
)

// DBDateLayout is how weekend anchor dates are stored and passed around.
const DBDateLayout = "2006-01-02"

const defaultStartTime = "10:00"

var dayNames = map[models.DayOfWeek]string{
	models.DayDivendres: "divendres",
	models.DayDissabte:  "dissabte",
	models.DayDiumenge:  "diumenge",
}

// UpcomingFriday returns the Friday anchor of the current weekend: now
// itself at start of day when now is a Friday, otherwise the next Friday.
func UpcomingFriday(now time.Time) time.Time {
	day := startOfDay(now)
	offset := (int(time.Friday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// NextFridays returns count consecutive weekly anchors starting at from.
// from is normalized to start of day.
func NextFridays(count int, from time.Time) []time.Time {
	anchors := make([]time.Time, 0, count)
	anchor := startOfDay(from)
	for i := 0; i < count; i++ {
		anchors = append(anchors, anchor.AddDate(0, 0, 7*i))
	}
	return anchors
}

// IsUpcoming reports whether weekendDate identifies the current weekend.
func IsUpcoming(weekendDate string, now time.Time) bool {
	return weekendDate == FormatDBDate(UpcomingFriday(now))
}

func FormatDBDate(t time.Time) string {
	return t.Format(DBDateLayout)
}

func ParseDBDate(s string) (time.Time, error) {
	return time.Parse(DBDateLayout, s)
}

// DayText renders a human-readable day phrase for an activity: a relative
// phrase for the upcoming weekend ("aquest dissabte"), an absolute one with
// the concrete date otherwise ("dissabte 3/1").
func DayText(weekendDate string, day models.DayOfWeek, now time.Time) string {
	name := dayNames[day]
	if name == "" {
		name = string(day)
	}
	if IsUpcoming(weekendDate, now) {
		return "aquest " + name
	}
	anchor, err := ParseDBDate(weekendDate)
	if err != nil {
		return name
	}
	date := anchor.AddDate(0, 0, day.AnchorOffset())
	return fmt.Sprintf("%s %d/%d", name, date.Day(), int(date.Month()))
}

// EventWindow computes the concrete start and end of an activity for
// calendar export: the anchor shifted to the activity's day, at its start
// time (10:00 when unset), lasting two hours.
func EventWindow(a models.Activity) (time.Time, time.Time, error) {
	anchor, err := ParseDBDate(a.WeekendDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid weekend date %q: %w", a.WeekendDate, err)
	}

	startTime := a.StartTime
	if startTime == "" {
		startTime = defaultStartTime
	}
	clock, err := time.Parse("15:04", startTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q: %w", a.StartTime, err)
	}

	day := anchor.AddDate(0, 0, a.DayOfWeek.AnchorOffset())
	start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location())
	return start, start.Add(2 * time.Hour), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
