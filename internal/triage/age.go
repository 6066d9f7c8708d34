// Package triage turns raw feed records into the displayable complaint
// list: it drops hidden records, canonicalizes categories, classifies
// complaint age into freshness tiers and orders the result by urgency.
package triage

import (
	"math"
	"time"

	"complaintdesk/backend/internal/config"
	"complaintdesk/backend/internal/models"
)

// Classify maps a creation timestamp to a freshness tier.
// daysOld is the whole-day difference between now and createdAt. A future
// createdAt yields a negative daysOld and the "new" tier; the negative
// value is kept for diagnostics.
func Classify(createdAt, now time.Time) (models.Tier, int) {
	daysOld := int(math.Floor(now.Sub(createdAt).Hours() / 24))

	switch {
	case daysOld >= config.CriticalAgeDays:
		return models.TierCritical, daysOld
	case daysOld >= config.WarningAgeDays:
		return models.TierWarning, daysOld
	default:
		return models.TierNew, daysOld
	}
}
