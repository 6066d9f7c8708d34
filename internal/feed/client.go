// Package feed mirrors the external complaint feed: a Client performing
// single fetches with a typed error taxonomy, and a Syncer coordinating
// fetches, the snapshot cache and the processed in-memory list.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"complaintdesk/backend/internal/models"
)

// Client fetches the raw complaint list from the external feed endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: &http.Client{}}
}

// FetchSnapshot issues one GET against the feed and decodes the JSON array
// of raw complaint records. forceRefresh appends refresh=true, instructing
// the feed's own server-side cache to bypass its TTL. Deadlines and
// cancellation come from ctx.
func (c *Client) FetchSnapshot(ctx context.Context, forceRefresh bool) ([]models.RawComplaint, error) {
	url := c.BaseURL
	if forceRefresh {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + "refresh=true"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Status: resp.StatusCode}
	}

	var snapshot []models.RawComplaint
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		// Body reads can also die on a context deadline or cancellation.
		if e := classifyTransportError(err); errors.Is(e, ErrTimeout) || errors.Is(e, ErrCanceled) {
			return nil, e
		}
		return nil, &ServerError{Status: resp.StatusCode}
	}
	return snapshot, nil
}

func classifyTransportError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return ErrCanceled
	default:
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
}
