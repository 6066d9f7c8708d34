package models

import "time"

// Tier is the freshness tier of a complaint, derived from its age.
type Tier string

const (
	TierCritical Tier = "critical"
	TierWarning  Tier = "warning"
	TierNew      Tier = "new"
)

// Rank returns the sort rank of the tier. Critical sorts first.
func (t Tier) Rank() int {
	switch t {
	case TierCritical:
		return 0
	case TierWarning:
		return 1
	default:
		return 2
	}
}

// RawComplaint is a single record of the external complaint feed, kept
// verbatim in the cache so categories can be re-normalized later if the
// canonical vocabulary changes.
type RawComplaint struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Details     string    `json:"details"`
	Category    string    `json:"category"`
	Visible     *bool     `json:"visible,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	SubmitterID string    `json:"submitter_id"`
}

// IsVisible reports whether the record may appear in any downstream view.
// A missing visible field counts as true.
func (r RawComplaint) IsVisible() bool {
	return r.Visible == nil || *r.Visible
}

// Complaint is the processed view of a feed record: category normalized,
// freshness tier and age computed at read time. Age and DaysOld are never
// stored; they are a function of CreatedAt and the current time only.
type Complaint struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Details     string    `json:"details"`
	Category    string    `json:"category"`
	SubmitterID string    `json:"submitter_id"`
	CreatedAt   time.Time `json:"created_at"`
	Age         Tier      `json:"age"`
	DaysOld     int       `json:"days_old"`
}
