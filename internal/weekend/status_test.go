package weekend

import (
	"reflect"
	"testing"

	"github.com/konnecta/weekend-api/internal/models"
)

func profile(id string) models.Profile {
	return models.Profile{ID: id, Email: id + "@example.com"}
}

func TestPartitionByStatus(t *testing.T) {
	roster := []models.Profile{profile("A"), profile("B"), profile("C")}
	plans := []models.WeekendPlan{
		{UserID: "A", WeekendDate: "2025-06-13", Status: models.StatusGoing},
		{UserID: "B", WeekendDate: "2025-06-13", Status: models.StatusPending},
	}

	buckets := PartitionByStatus(roster, plans)

	if len(buckets.Going) != 1 || buckets.Going[0].ID != "A" {
		t.Errorf("expected going = [A], got %v", ids(buckets.Going))
	}
	if len(buckets.NotGoing) != 0 {
		t.Errorf("expected not_going = [], got %v", ids(buckets.NotGoing))
	}
	if len(buckets.Pending) != 1 || buckets.Pending[0].ID != "B" {
		t.Errorf("expected pending = [B], got %v", ids(buckets.Pending))
	}
	if len(buckets.Unanswered) != 1 || buckets.Unanswered[0].ID != "C" {
		t.Errorf("expected unanswered = [C], got %v", ids(buckets.Unanswered))
	}
}

func TestPartitionByStatus_DisjointAndCovering(t *testing.T) {
	roster := []models.Profile{profile("A"), profile("B"), profile("C"), profile("D"), profile("E")}
	plans := []models.WeekendPlan{
		{UserID: "A", Status: models.StatusGoing},
		{UserID: "B", Status: models.StatusNotGoing},
		{UserID: "C", Status: models.StatusPending},
		{UserID: "E", Status: models.StatusGoing},
		{UserID: "ghost", Status: models.StatusGoing}, // plan row without a roster profile
	}

	buckets := PartitionByStatus(roster, plans)

	seen := map[string]int{}
	for _, bucket := range [][]models.Profile{buckets.Going, buckets.NotGoing, buckets.Pending, buckets.Unanswered} {
		for _, p := range bucket {
			seen[p.ID]++
		}
	}

	if len(seen) != len(roster) {
		t.Errorf("partitions cover %d users, roster has %d", len(seen), len(roster))
	}
	for _, p := range roster {
		if seen[p.ID] != 1 {
			t.Errorf("user %s appears %d times across partitions", p.ID, seen[p.ID])
		}
	}
	if seen["ghost"] != 0 {
		t.Error("plan row without a roster profile leaked into the partitions")
	}
}

func TestPartitionByStatus_Idempotent(t *testing.T) {
	roster := []models.Profile{profile("A"), profile("B"), profile("C")}
	plans := []models.WeekendPlan{
		{UserID: "A", Status: models.StatusGoing},
		{UserID: "C", Status: models.StatusPending},
	}

	first := PartitionByStatus(roster, plans)
	second := PartitionByStatus(roster, plans)
	if !reflect.DeepEqual(first, second) {
		t.Error("recomputing from the same inputs changed the partitions")
	}
}

func TestUnconfirmedIDs(t *testing.T) {
	roster := []models.Profile{profile("A"), profile("B"), profile("C"), profile("D")}
	plans := []models.WeekendPlan{
		{UserID: "A", Status: models.StatusGoing},
		{UserID: "B", Status: models.StatusPending},
		{UserID: "D", Status: models.StatusNotGoing},
	}

	got := UnconfirmedIDs(roster, plans)
	expected := []string{"B", "C"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected unconfirmed %v, got %v", expected, got)
	}
}

func TestUnconfirmedIDs_AllConfirmed(t *testing.T) {
	roster := []models.Profile{profile("A"), profile("B")}
	plans := []models.WeekendPlan{
		{UserID: "A", Status: models.StatusGoing},
		{UserID: "B", Status: models.StatusNotGoing},
	}

	if got := UnconfirmedIDs(roster, plans); len(got) != 0 {
		t.Errorf("expected nobody unconfirmed, got %v", got)
	}
}

func ids(profiles []models.Profile) []string {
	var out []string
	for _, p := range profiles {
		out = append(out, p.ID)
	}
	return out
}
