// Package cache persists the last successfully fetched raw feed snapshot.
// The cache is a strict optimization, never a correctness dependency:
// write errors are logged and swallowed, unreadable data counts as an
// empty cache.
package cache

import (
	"context"
	"time"

	"complaintdesk/backend/internal/models"
)

// Store holds exactly one snapshot: the last raw feed response, verbatim,
// plus its write timestamp. The snapshot stays raw so categories can be
// re-normalized when the canonical vocabulary changes.
type Store interface {
	// Put replaces the cached snapshot and records the current time as the
	// write timestamp. Persistence failures are swallowed.
	Put(ctx context.Context, snapshot []models.RawComplaint)
	// Get returns the last cached snapshot. ok is false when nothing was
	// ever stored or the stored data cannot be parsed.
	Get(ctx context.Context) (snapshot []models.RawComplaint, ok bool)
	// Age returns the elapsed time since the last Put, or ok=false when
	// never written.
	Age(ctx context.Context) (age time.Duration, ok bool)
}
