package triage

import (
	"sort"

	"complaintdesk/backend/internal/models"
)

// SortByPriority orders complaints in place so the most urgent come first:
// critical before warning before new, oldest first within a tier. The sort
// is stable, so records with equal keys keep their feed order and
// pagination stays deterministic across re-renders.
func SortByPriority(complaints []models.Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		if complaints[i].Age.Rank() != complaints[j].Age.Rank() {
			return complaints[i].Age.Rank() < complaints[j].Age.Rank()
		}
		return complaints[i].CreatedAt.Before(complaints[j].CreatedAt)
	})
}
