package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"complaintdesk/backend/internal/models"
)

// Two string keys: the serialized snapshot and its write timestamp as
// epoch milliseconds. No schema versioning; a failed parse reads as "no
// cache".
const (
	snapshotKey = "complaints:snapshot"
	syncedAtKey = "complaints:synced_at"
)

// RedisStore keeps the snapshot in Redis.
type RedisStore struct {
	Client *redis.Client
	Now    func() time.Time // defaults to time.Now
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *RedisStore) Put(ctx context.Context, snapshot []models.RawComplaint) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("ERROR: Failed to serialize snapshot for cache: %v", err)
		return
	}
	millis := strconv.FormatInt(s.now().UnixMilli(), 10)

	if err := s.Client.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		log.Printf("ERROR: Failed to write snapshot cache: %v", err)
		return
	}
	if err := s.Client.Set(ctx, syncedAtKey, millis, 0).Err(); err != nil {
		log.Printf("ERROR: Failed to write snapshot timestamp: %v", err)
	}
}

func (s *RedisStore) Get(ctx context.Context) ([]models.RawComplaint, bool) {
	data, err := s.Client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("ERROR: Failed to read snapshot cache: %v", err)
		return nil, false
	}

	var snapshot []models.RawComplaint
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Printf("ERROR: Corrupt snapshot cache, treating as empty: %v", err)
		return nil, false
	}
	return snapshot, true
}

func (s *RedisStore) Age(ctx context.Context) (time.Duration, bool) {
	raw, err := s.Client.Get(ctx, syncedAtKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		log.Printf("ERROR: Failed to read snapshot timestamp: %v", err)
		return 0, false
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return s.now().Sub(time.UnixMilli(millis)), true
}
