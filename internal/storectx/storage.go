package storectx

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

const selectionKeyPrefix = "storectx:selection:"

// RedisSelectionStore keeps the active-store selection in redis so it
// survives restarts. Keys carry no TTL; the selection is durable until
// overwritten.
type RedisSelectionStore struct {
	redis *redis.Client
}

func NewRedisSelectionStore(redisClient *redis.Client) *RedisSelectionStore {
	return &RedisSelectionStore{redis: redisClient}
}

func (s *RedisSelectionStore) key(userID int64) string {
	return fmt.Sprintf("%s%d", selectionKeyPrefix, userID)
}

func (s *RedisSelectionStore) Get(ctx context.Context, userID int64) (string, error) {
	val, err := s.redis.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read selection: %w", err)
	}
	return val, nil
}

func (s *RedisSelectionStore) Set(ctx context.Context, userID int64, storeID string) error {
	if err := s.redis.Set(ctx, s.key(userID), storeID, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist selection: %w", err)
	}
	return nil
}

// MemorySelectionStore is the in-process fallback used by tests and by
// deployments without redis.
type MemorySelectionStore struct {
	mu         sync.Mutex
	selections map[int64]string
}

func NewMemorySelectionStore() *MemorySelectionStore {
	return &MemorySelectionStore{selections: make(map[int64]string)}
}

func (s *MemorySelectionStore) Get(_ context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selections[userID], nil
}

func (s *MemorySelectionStore) Set(_ context.Context, userID int64, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[userID] = storeID
	return nil
}
