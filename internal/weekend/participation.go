package weekend

import "github.com/konnecta/weekend-api/internal/models"

// ParticipationSummary is the per-viewer view of an activity's join rows.
type ParticipationSummary struct {
	IsJoined        bool
	TotalAttendance int
}

// Summarize computes total attendance (every participant counts for
// themselves plus their guests) and whether the viewer has joined.
func Summarize(participants []models.ActivityParticipant, viewerID string) ParticipationSummary {
	var summary ParticipationSummary
	for _, p := range participants {
		summary.TotalAttendance += 1 + p.AdditionalParticipants
		if p.UserID == viewerID {
			summary.IsJoined = true
		}
	}
	return summary
}
