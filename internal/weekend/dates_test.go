package weekend

import (
	"testing"
	"time"

	"github.com/konnecta/weekend-api/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpcomingFriday(t *testing.T) {
	// 2025-06-13 is a Friday.
	target := date(2025, time.June, 13)

	cases := []struct {
		now      time.Time
		expected time.Time
	}{
		{date(2025, time.June, 7), target},  // Saturday
		{date(2025, time.June, 8), target},  // Sunday
		{date(2025, time.June, 9), target},  // Monday
		{date(2025, time.June, 10), target}, // Tuesday
		{date(2025, time.June, 11), target}, // Wednesday
		{date(2025, time.June, 12), target}, // Thursday
		{date(2025, time.June, 13), target}, // Friday itself
	}

	for _, tc := range cases {
		got := UpcomingFriday(tc.now)
		if !got.Equal(tc.expected) {
			t.Errorf("UpcomingFriday(%s) = %s, expected %s",
				tc.now.Format(DBDateLayout), got.Format(DBDateLayout), tc.expected.Format(DBDateLayout))
		}
	}
}

func TestUpcomingFriday_TimeOfDayIgnored(t *testing.T) {
	lateFriday := time.Date(2025, time.June, 13, 23, 45, 12, 0, time.UTC)
	got := UpcomingFriday(lateFriday)
	if !got.Equal(date(2025, time.June, 13)) {
		t.Errorf("expected start of the same Friday, got %s", got)
	}
}

func TestIsUpcoming(t *testing.T) {
	const anchor = "2025-06-13"

	for d := 7; d <= 13; d++ {
		if !IsUpcoming(anchor, date(2025, time.June, d)) {
			t.Errorf("expected %s to be upcoming when today is 2025-06-%02d", anchor, d)
		}
	}
	if IsUpcoming(anchor, date(2025, time.June, 6)) {
		t.Error("anchor should not be upcoming while the previous Friday is still current")
	}
	if IsUpcoming(anchor, date(2025, time.June, 14)) {
		t.Error("anchor should not be upcoming once the weekend has passed")
	}
}

func TestNextFridays(t *testing.T) {
	from := UpcomingFriday(date(2025, time.June, 10))
	anchors := NextFridays(10, from)

	if len(anchors) != 10 {
		t.Fatalf("expected 10 anchors, got %d", len(anchors))
	}
	for i, anchor := range anchors {
		if anchor.Weekday() != time.Friday {
			t.Errorf("anchor %d (%s) is not a Friday", i, anchor.Format(DBDateLayout))
		}
		if i > 0 {
			if diff := anchor.Sub(anchors[i-1]); diff != 7*24*time.Hour {
				t.Errorf("anchors %d and %d are %s apart, expected one week", i-1, i, diff)
			}
		}
	}

	// Restartable: enumerating again yields the same sequence.
	again := NextFridays(10, from)
	for i := range anchors {
		if !anchors[i].Equal(again[i]) {
			t.Errorf("anchor %d differs between enumerations", i)
		}
	}
}

func TestDayText(t *testing.T) {
	now := date(2025, time.June, 10) // Tuesday; upcoming anchor is 2025-06-13

	if got := DayText("2025-06-13", models.DayDissabte, now); got != "aquest dissabte" {
		t.Errorf("expected relative phrase for the upcoming weekend, got %q", got)
	}

	cases := []struct {
		day      models.DayOfWeek
		expected string
	}{
		{models.DayDivendres, "divendres 2/1"},
		{models.DayDissabte, "dissabte 3/1"},
		{models.DayDiumenge, "diumenge 4/1"},
	}
	for _, tc := range cases {
		// 2026-01-02 is a Friday far from now.
		if got := DayText("2026-01-02", tc.day, now); got != tc.expected {
			t.Errorf("DayText(2026-01-02, %s) = %q, expected %q", tc.day, got, tc.expected)
		}
	}
}

func TestEventWindow(t *testing.T) {
	activity := models.Activity{
		WeekendDate: "2025-06-13",
		DayOfWeek:   models.DayDissabte,
		StartTime:   "18:30",
	}

	start, end, err := EventWindow(activity)
	if err != nil {
		t.Fatalf("EventWindow returned error: %v", err)
	}
	if start.Day() != 14 || start.Hour() != 18 || start.Minute() != 30 {
		t.Errorf("unexpected start %s", start)
	}
	if end.Sub(start) != 2*time.Hour {
		t.Errorf("expected a two hour window, got %s", end.Sub(start))
	}
}

func TestEventWindow_DefaultStartTime(t *testing.T) {
	activity := models.Activity{
		WeekendDate: "2025-06-13",
		DayOfWeek:   models.DayDivendres,
	}

	start, _, err := EventWindow(activity)
	if err != nil {
		t.Fatalf("EventWindow returned error: %v", err)
	}
	if start.Day() != 13 || start.Hour() != 10 || start.Minute() != 0 {
		t.Errorf("expected 10:00 on the anchor day, got %s", start)
	}
}

func TestEventWindow_InvalidDate(t *testing.T) {
	if _, _, err := EventWindow(models.Activity{WeekendDate: "not-a-date"}); err == nil {
		t.Error("expected error for malformed weekend date")
	}
}
