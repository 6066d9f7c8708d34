package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"complaintdesk/backend/internal/cache"
	"complaintdesk/backend/internal/config"
	"complaintdesk/backend/internal/models"
	"complaintdesk/backend/internal/triage"
)

// State of the sync lifecycle: Idle -> Loading -> {Loaded, Failed}, with
// Loaded -> BackgroundRefreshing -> Loaded recurring while the service
// runs. Failed is not terminal; any retry re-enters Loading.
type State string

const (
	StateIdle                 State = "idle"
	StateLoading              State = "loading"
	StateLoaded               State = "loaded"
	StateFailed               State = "failed"
	StateBackgroundRefreshing State = "background_refreshing"
)

// CategorySource provides the canonical category vocabulary. The sync
// pipeline works without it; every category is then treated as
// non-canonical but still usable for grouping.
type CategorySource interface {
	ListCategories() ([]string, error)
}

// Broadcaster is told after every sync that changed the snapshot.
type Broadcaster interface {
	BroadcastSnapshot(count int, syncedAt time.Time)
}

// Notifier is alerted about complaints that newly entered the critical
// tier.
type Notifier interface {
	CriticalAlert(complaints []models.Complaint)
}

// handle is the cancellation handle for one fetch. A Syncer keeps exactly
// one live handle; creating a new one cancels the previous, so a single
// fetch is in flight at a time and the last cache write always belongs to
// the most recently started fetch.
type handle struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Syncer coordinates the feed client, the snapshot cache and the processed
// in-memory complaint list.
type Syncer struct {
	Client     *Client
	Store      cache.Store
	Categories CategorySource
	Hub        Broadcaster // optional
	Notifier   Notifier    // optional

	ForegroundTimeout time.Duration
	StaleAfter        time.Duration
	Now               func() time.Time // defaults to time.Now

	mu       sync.Mutex
	cancel   context.CancelFunc
	state    State
	current  []models.Complaint
	lastRaw  []byte
	critical map[string]bool
	syncedAt time.Time
}

func NewSyncer(client *Client, store cache.Store, categories CategorySource) *Syncer {
	return &Syncer{
		Client:            client,
		Store:             store,
		Categories:        categories,
		ForegroundTimeout: config.ForegroundFetchTimeout,
		StaleAfter:        config.CacheStaleAfter,
		state:             StateIdle,
		critical:          make(map[string]bool),
	}
}

func (s *Syncer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// State returns the current lifecycle state.
func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns a copy of the processed complaint list.
func (s *Syncer) Current() []models.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Complaint, len(s.current))
	copy(out, s.current)
	return out
}

// SyncedAt returns the time of the last applied snapshot.
func (s *Syncer) SyncedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncedAt
}

func (s *Syncer) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// newHandle invalidates the previous fetch before issuing a new one.
// timeout <= 0 means no deadline, only cancellation.
func (s *Syncer) newHandle(parent context.Context, timeout time.Duration) *handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	s.cancel = cancel
	return &handle{ctx: ctx, cancel: cancel}
}

// Load serves the complaint list for a page load. Cached data, even stale,
// is served immediately; a stale cache additionally triggers a background
// refresh whose result silently replaces the snapshot once it completes.
// Only when nothing was ever cached does Load block on a foreground fetch
// under the foreground deadline.
func (s *Syncer) Load(ctx context.Context) ([]models.Complaint, error) {
	s.mu.Lock()
	ready := s.state == StateLoaded || s.state == StateBackgroundRefreshing
	s.mu.Unlock()

	if !ready {
		if cached, ok := s.Store.Get(ctx); ok {
			s.seed(ctx, cached)
			ready = true
		}
	}

	if ready {
		if age, ok := s.Store.Age(ctx); (!ok || age > s.StaleAfter) && s.State() != StateBackgroundRefreshing {
			go s.refresh(false)
		}
		return s.Current(), nil
	}

	// Nothing cached: block on a foreground fetch.
	s.setState(StateLoading)
	h := s.newHandle(ctx, s.ForegroundTimeout)
	defer h.cancel()

	raw, err := s.Client.FetchSnapshot(h.ctx, false)
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			// Superseded by a newer fetch; whoever started it reports.
			return s.Current(), nil
		}
		log.Printf("ERROR: Foreground feed fetch failed: %v", err)
		s.setState(StateFailed)
		return nil, err
	}
	s.commit(raw)
	return s.Current(), nil
}

// ForceRefresh bypasses both the local cache and the feed's server-side
// cache for a manual refresh action. On failure any previously cached data
// keeps being served and the error is returned alongside it so the caller
// can show a retryable notice.
func (s *Syncer) ForceRefresh(ctx context.Context) ([]models.Complaint, error) {
	s.setState(StateLoading)
	h := s.newHandle(ctx, s.ForegroundTimeout)
	defer h.cancel()

	raw, err := s.Client.FetchSnapshot(h.ctx, true)
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			return s.Current(), nil
		}
		log.Printf("ERROR: Forced feed refresh failed: %v", err)
		if cached, ok := s.Store.Get(ctx); ok {
			s.seed(ctx, cached)
			return s.Current(), err
		}
		s.setState(StateFailed)
		return nil, err
	}
	s.commit(raw)
	return s.Current(), nil
}

// refresh runs one background refresh. No deadline is enforced, but the
// fetch goes through the shared cancellation handle so a later fetch
// supersedes it. Failures are silent: the cached snapshot keeps being
// served.
func (s *Syncer) refresh(force bool) {
	s.setState(StateBackgroundRefreshing)
	h := s.newHandle(context.Background(), 0)
	defer h.cancel()

	raw, err := s.Client.FetchSnapshot(h.ctx, force)
	if err != nil {
		if !errors.Is(err, ErrCanceled) {
			log.Printf("WARNING: Background refresh failed, keeping cached data: %v", err)
		}
		s.mu.Lock()
		if s.state == StateBackgroundRefreshing {
			s.state = StateLoaded
		}
		s.mu.Unlock()
		return
	}
	s.commit(raw)
}

// commit persists a successful fetch and publishes the processed result.
// The cache write always happens, so the staleness clock tracks the last
// successful fetch; a snapshot byte-identical to the previous one then
// skips the reprocessing, broadcast and alert churn.
func (s *Syncer) commit(raw []models.RawComplaint) {
	serialized, err := json.Marshal(raw)
	if err != nil {
		log.Printf("ERROR: Failed to serialize snapshot: %v", err)
	}

	s.Store.Put(context.Background(), raw)

	s.mu.Lock()
	if serialized != nil && bytes.Equal(serialized, s.lastRaw) {
		s.syncedAt = s.now()
		s.state = StateLoaded
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	processed := s.process(raw)

	s.mu.Lock()
	s.lastRaw = serialized
	s.current = processed
	s.syncedAt = s.now()
	s.state = StateLoaded

	var newlyCritical []models.Complaint
	nowCritical := make(map[string]bool, len(processed))
	for _, c := range processed {
		if c.Age != models.TierCritical {
			continue
		}
		nowCritical[c.ID] = true
		if !s.critical[c.ID] {
			newlyCritical = append(newlyCritical, c)
		}
	}
	s.critical = nowCritical
	count := len(processed)
	syncedAt := s.syncedAt
	s.mu.Unlock()

	if s.Hub != nil {
		s.Hub.BroadcastSnapshot(count, syncedAt)
	}
	if s.Notifier != nil && len(newlyCritical) > 0 {
		s.Notifier.CriticalAlert(newlyCritical)
	}
}

// seed rebuilds the in-memory list from a cached snapshot without writing
// the cache back or alerting anyone. Tiers are recomputed against the
// current time, so a cached record can surface in a higher tier than it
// was fetched in.
func (s *Syncer) seed(ctx context.Context, cached []models.RawComplaint) {
	serialized, _ := json.Marshal(cached)
	processed := s.process(cached)

	syncedAt := s.now()
	if age, ok := s.Store.Age(ctx); ok {
		syncedAt = syncedAt.Add(-age)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRaw = serialized
	s.current = processed
	s.syncedAt = syncedAt
	s.state = StateLoaded
	s.critical = make(map[string]bool)
	for _, c := range processed {
		if c.Age == models.TierCritical {
			s.critical[c.ID] = true
		}
	}
}

func (s *Syncer) process(raw []models.RawComplaint) []models.Complaint {
	var known []string
	if s.Categories != nil {
		k, err := s.Categories.ListCategories()
		if err != nil {
			log.Printf("WARNING: Category vocabulary unavailable, keeping raw labels: %v", err)
		} else {
			known = k
		}
	}
	return triage.Pipeline{Known: known, Now: s.Now}.Process(raw)
}
