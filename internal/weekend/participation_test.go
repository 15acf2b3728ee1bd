package weekend

import (
	"reflect"
	"testing"

	"github.com/konnecta/weekend-api/internal/models"
)

func TestSummarize(t *testing.T) {
	participants := []models.ActivityParticipant{
		{ActivityID: "act", UserID: "u1", AdditionalParticipants: 0},
		{ActivityID: "act", UserID: "u2", AdditionalParticipants: 1},
	}

	summary := Summarize(participants, "u1")
	if summary.TotalAttendance != 3 {
		t.Errorf("expected total attendance 3, got %d", summary.TotalAttendance)
	}
	if !summary.IsJoined {
		t.Error("expected viewer u1 to be joined")
	}

	if Summarize(participants, "u3").IsJoined {
		t.Error("expected viewer u3 not to be joined")
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, "u1")
	if summary.TotalAttendance != 0 || summary.IsJoined {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	participants := []models.ActivityParticipant{
		{ActivityID: "act", UserID: "u1", AdditionalParticipants: 1},
		{ActivityID: "act", UserID: "u2"},
	}

	first := Summarize(participants, "u2")
	second := Summarize(participants, "u2")
	if !reflect.DeepEqual(first, second) {
		t.Error("recomputing from the same inputs changed the summary")
	}
}
