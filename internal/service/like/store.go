package like

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store remembers which artworks each visitor has liked.
type Store interface {
	// Add returns true when the artwork was not yet liked by the visitor.
	Add(ctx context.Context, visitorID string, artworkID uuid.UUID) (bool, error)
	// Remove returns true when the artwork was liked and no longer is.
	Remove(ctx context.Context, visitorID string, artworkID uuid.UUID) (bool, error)
	List(ctx context.Context, visitorID string) ([]uuid.UUID, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func visitorKey(visitorID string) string {
	return fmt.Sprintf("likes:visitor:%s", visitorID)
}

func (s *RedisStore) Add(ctx context.Context, visitorID string, artworkID uuid.UUID) (bool, error) {
	n, err := s.client.SAdd(ctx, visitorKey(visitorID), artworkID.String()).Result()
	return n == 1, err
}

func (s *RedisStore) Remove(ctx context.Context, visitorID string, artworkID uuid.UUID) (bool, error) {
	n, err := s.client.SRem(ctx, visitorKey(visitorID), artworkID.String()).Result()
	return n == 1, err
}

func (s *RedisStore) List(ctx context.Context, visitorID string) ([]uuid.UUID, error) {
	members, err := s.client.SMembers(ctx, visitorKey(visitorID)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// MemoryStore keeps likes in process memory. Used when Redis is unavailable
// and in tests; contents are lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	liked map[string]map[uuid.UUID]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{liked: make(map[string]map[uuid.UUID]struct{})}
}

func (s *MemoryStore) Add(_ context.Context, visitorID string, artworkID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.liked[visitorID]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		s.liked[visitorID] = set
	}
	if _, exists := set[artworkID]; exists {
		return false, nil
	}
	set[artworkID] = struct{}{}
	return true, nil
}

func (s *MemoryStore) Remove(_ context.Context, visitorID string, artworkID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.liked[visitorID]
	if _, exists := set[artworkID]; !exists {
		return false, nil
	}
	delete(set, artworkID)
	return true, nil
}

func (s *MemoryStore) List(_ context.Context, visitorID string) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(s.liked[visitorID]))
	for id := range s.liked[visitorID] {
		ids = append(ids, id)
	}
	return ids, nil
}
