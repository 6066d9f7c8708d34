package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"complaintdesk/backend/internal/models"
)

// MemoryStore is the in-process fallback used when no Redis address is
// configured, and the store of choice in tests. It keeps the snapshot in
// serialized form like the Redis store does, so parse failures behave the
// same way.
type MemoryStore struct {
	mu       sync.RWMutex
	data     []byte
	syncedAt time.Time
	written  bool

	Now func() time.Time // defaults to time.Now
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MemoryStore) Put(ctx context.Context, snapshot []models.RawComplaint) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("ERROR: Failed to serialize snapshot for cache: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.syncedAt = s.now()
	s.written = true
}

func (s *MemoryStore) Get(ctx context.Context) ([]models.RawComplaint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.written {
		return nil, false
	}

	var snapshot []models.RawComplaint
	if err := json.Unmarshal(s.data, &snapshot); err != nil {
		log.Printf("ERROR: Corrupt snapshot cache, treating as empty: %v", err)
		return nil, false
	}
	return snapshot, true
}

func (s *MemoryStore) Age(ctx context.Context) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.written {
		return 0, false
	}
	return s.now().Sub(s.syncedAt), true
}
