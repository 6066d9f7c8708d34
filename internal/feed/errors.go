package feed

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout means a foreground fetch ran over its deadline.
	ErrTimeout = errors.New("feed: fetch timed out")

	// ErrCanceled means the fetch was superseded by a newer one. Canceled
	// fetches are swallowed and never reach the user.
	ErrCanceled = errors.New("feed: fetch canceled")

	// ErrNetwork is a transport-level failure (DNS, connection refused).
	ErrNetwork = errors.New("feed: network error")
)

// ServerError is a non-2xx response or an unparsable body from the feed.
// The status is logged for diagnostics but not shown to end users.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("feed: server error (status %d)", e.Status)
}
