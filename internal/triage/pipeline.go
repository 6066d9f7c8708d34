package triage

import (
	"time"

	"complaintdesk/backend/internal/models"
)

// Pipeline processes a raw feed snapshot into the displayable list.
// Known is the canonical category vocabulary; it may be empty, in which
// case every category is treated as non-canonical but still groupable.
type Pipeline struct {
	Known []string
	Now   func() time.Time // defaults to time.Now
}

// Process filters out hidden records, normalizes each category, computes
// the freshness tier against the current time and applies priority order.
func (p Pipeline) Process(raw []models.RawComplaint) []models.Complaint {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	out := make([]models.Complaint, 0, len(raw))
	for _, r := range raw {
		if !r.IsVisible() {
			continue
		}
		tier, daysOld := Classify(r.CreatedAt, now)
		out = append(out, models.Complaint{
			ID:          r.ID,
			Title:       r.Title,
			Details:     r.Details,
			Category:    NormalizeCategory(r.Category, p.Known),
			SubmitterID: r.SubmitterID,
			CreatedAt:   r.CreatedAt,
			Age:         tier,
			DaysOld:     daysOld,
		})
	}
	SortByPriority(out)
	return out
}
