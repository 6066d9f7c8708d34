package triage

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"complaintdesk/backend/internal/config"
	"complaintdesk/backend/internal/models"
)

// NormalizeCategory canonicalizes a free-text category label against the
// known vocabulary. The raw value is trimmed and NFC-normalized before any
// comparison; Hebrew input from spreadsheets can carry combining-mark
// variants that render identically but compare unequal byte-wise.
//
// An empty value becomes the default category. A value matching a known
// member returns that member. Anything else is returned cleaned but
// non-canonical, so identical unknown labels still group under exact
// string match.
func NormalizeCategory(raw string, known []string) string {
	clean := norm.NFC.String(strings.TrimSpace(raw))
	if clean == "" {
		return config.DefaultCategory
	}
	for _, k := range known {
		if clean == norm.NFC.String(strings.TrimSpace(k)) {
			return k
		}
	}
	return clean
}

// AllowedCategory reports whether a complaint with the given normalized
// category is visible to a user with the given assignment set. An empty
// assignment set means unrestricted visibility. This predicate is access
// control; the explicit UI category filter is a separate predicate and the
// two are ANDed by the caller.
func AllowedCategory(category string, assigned []string) bool {
	if len(assigned) == 0 {
		return true
	}
	for _, a := range assigned {
		if category == a {
			return true
		}
	}
	return false
}

// Restrict returns the complaints whose normalized category is allowed for
// the given assignment set.
func Restrict(complaints []models.Complaint, assigned []string) []models.Complaint {
	if len(assigned) == 0 {
		return complaints
	}
	out := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if AllowedCategory(c.Category, assigned) {
			out = append(out, c)
		}
	}
	return out
}
