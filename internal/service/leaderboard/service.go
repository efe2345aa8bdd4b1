package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/metrics"
	"lomba-poster/internal/repository"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	cacheName   = "leaderboard"
	cachePrefix = "leaderboard:"
)

type Service interface {
	Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	// Invalidate drops every cached ranking.
	Invalidate(ctx context.Context)
}

type service struct {
	scoreRepo repository.ScoreRepository
	redis     *redis.Client
	cacheTTL  time.Duration
}

func NewService(scoreRepo repository.ScoreRepository, redis *redis.Client, cacheTTL time.Duration) Service {
	return &service{
		scoreRepo: scoreRepo,
		redis:     redis,
		cacheTTL:  cacheTTL,
	}
}

func (s *service) Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	cacheKey := fmt.Sprintf("%s%d", cachePrefix, limit)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []domain.LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				metrics.RecordCacheHit(cacheName)
				return entries, nil
			}
		}
		metrics.RecordCacheMiss(cacheName)
	}

	entries, err := s.scoreRepo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	Rank(entries)

	if s.redis != nil && s.cacheTTL > 0 {
		if data, err := json.Marshal(entries); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, s.cacheTTL).Err()
		}
	}
	return entries, nil
}

func (s *service) Invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, cachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logrus.WithError(err).Warn("failed to scan leaderboard cache")
		return
	}
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}

// Rank assigns competition ranks to entries already ordered best first.
// Entries with the same average score and judge count share a rank and the
// next rank skips accordingly (1, 2, 2, 4).
func Rank(entries []domain.LeaderboardEntry) {
	for i := range entries {
		if i > 0 && tied(entries[i-1], entries[i]) {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

func tied(a, b domain.LeaderboardEntry) bool {
	const epsilon = 1e-9
	diff := a.AverageScore - b.AverageScore
	return diff < epsilon && diff > -epsilon && a.JudgeCount == b.JudgeCount
}
