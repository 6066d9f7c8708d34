package config

import "time"

const (
	// Freshness tiers (whole days since the complaint was created)
	WarningAgeDays  = 4
	CriticalAgeDays = 7

	// Sync
	ForegroundFetchTimeout = 10 * time.Second
	CacheStaleAfter        = 5 * time.Minute

	// Fallback category for records with an empty category field.
	DefaultCategory = "אחר"
)
