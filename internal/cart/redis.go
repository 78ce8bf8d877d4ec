package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"resto-dashboard/internal/domain"
)

// RedisStore keeps each session's cart as a JSON blob under a per-session
// key so the dashboard can run as multiple instances behind one Redis.
// Every mutation refreshes the session TTL.
//
// Add and Remove are plain read-modify-write cycles. A cart belongs to a
// single browser session that issues its mutations one at a time, so the
// round trip is not guarded by a WATCH transaction.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return "cart:session:" + sessionID
}

func (s *RedisStore) Add(ctx context.Context, sessionID string, dish domain.Dish) error {
	entries, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, addEntry(entries, dish))
}

func (s *RedisStore) Remove(ctx context.Context, sessionID string, dishID int) error {
	entries, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, removeEntry(entries, dishID))
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, s.key(sessionID)).Err()
}

func (s *RedisStore) Entries(ctx context.Context, sessionID string) ([]domain.CartEntry, error) {
	return s.load(ctx, sessionID)
}

func (s *RedisStore) load(ctx context.Context, sessionID string) ([]domain.CartEntry, error) {
	raw, err := s.Client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []domain.CartEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *RedisStore) save(ctx context.Context, sessionID string, entries []domain.CartEntry) error {
	if len(entries) == 0 {
		return s.Client.Del(ctx, s.key(sessionID)).Err()
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(sessionID), payload, s.TTL).Err()
}

var _ Store = (*RedisStore)(nil)
