package weekend

import "github.com/konnecta/weekend-api/internal/models"

// StatusBuckets partitions the roster for one weekend. The four slices are
// disjoint and together cover every roster member exactly once; "unanswered"
// is the roster minus everyone with a stored plan row.
type StatusBuckets struct {
	Going      []models.Profile
	NotGoing   []models.Profile
	Pending    []models.Profile
	Unanswered []models.Profile
}

// PartitionByStatus buckets every roster member by their stored plan status.
// Plan rows for user ids outside the roster are ignored; displaying such
// rows is the caller's concern, not an aggregation error.
func PartitionByStatus(roster []models.Profile, plans []models.WeekendPlan) StatusBuckets {
	statusByUser := make(map[string]models.PlanStatus, len(plans))
	for _, p := range plans {
		statusByUser[p.UserID] = p.Status
	}

	var buckets StatusBuckets
	for _, profile := range roster {
		switch statusByUser[profile.ID] {
		case models.StatusGoing:
			buckets.Going = append(buckets.Going, profile)
		case models.StatusNotGoing:
			buckets.NotGoing = append(buckets.NotGoing, profile)
		case models.StatusPending:
			buckets.Pending = append(buckets.Pending, profile)
		default:
			buckets.Unanswered = append(buckets.Unanswered, profile)
		}
	}
	return buckets
}

// UnconfirmedIDs returns the roster ids that have not answered yet or are
// still "pending": the reminder job's audience.
func UnconfirmedIDs(roster []models.Profile, plans []models.WeekendPlan) []string {
	statusByUser := make(map[string]models.PlanStatus, len(plans))
	for _, p := range plans {
		statusByUser[p.UserID] = p.Status
	}

	var ids []string
	for _, profile := range roster {
		status, answered := statusByUser[profile.ID]
		if !answered || status == models.StatusPending {
			ids = append(ids, profile.ID)
		}
	}
	return ids
}
