package triage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"complaintdesk/backend/internal/models"
	"complaintdesk/backend/internal/triage"
)

// TestClassify_TierBoundaries verifies the tier thresholds, including the
// exact boundary days which fall into the higher tier.
func TestClassify_TierBoundaries(t *testing.T) {
	// Arrange
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		daysOld int
		tier    models.Tier
	}{
		{0, models.TierNew},
		{3, models.TierNew},
		{4, models.TierWarning},
		{6, models.TierWarning},
		{7, models.TierCritical},
		{30, models.TierCritical},
	}

	for _, tc := range cases {
		// Act
		tier, daysOld := triage.Classify(now.AddDate(0, 0, -tc.daysOld), now)

		// Assert
		assert.Equal(t, tc.tier, tier, "daysOld=%d", tc.daysOld)
		assert.Equal(t, tc.daysOld, daysOld)
	}
}

// TestClassify_WholeDayDifference verifies floor semantics: 6 days and 23
// hours is still 6 whole days, not 7.
func TestClassify_WholeDayDifference(t *testing.T) {
	// Arrange
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	createdAt := now.Add(-(6*24 + 23) * time.Hour)

	// Act
	tier, daysOld := triage.Classify(createdAt, now)

	// Assert
	assert.Equal(t, 6, daysOld)
	assert.Equal(t, models.TierWarning, tier)
}

// TestClassify_FutureTimestamp verifies a future createdAt does not crash:
// the record is "new" and the negative day count is preserved.
func TestClassify_FutureTimestamp(t *testing.T) {
	// Arrange
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Act
	tier, daysOld := triage.Classify(now.Add(36*time.Hour), now)

	// Assert
	assert.Equal(t, models.TierNew, tier)
	assert.Equal(t, -2, daysOld, "floor of -1.5 days is -2")
}
