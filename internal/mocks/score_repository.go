package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lomba-poster/internal/domain"
)

type ScoreRepository struct {
	mock.Mock
}

func (m *ScoreRepository) Upsert(ctx context.Context, score *domain.Score) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *ScoreRepository) ListByJudge(ctx context.Context, judgeName string) ([]domain.Score, error) {
	args := m.Called(ctx, judgeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Score), args.Error(1)
}

func (m *ScoreRepository) ListByArtwork(ctx context.Context, artworkID uuid.UUID) ([]domain.Score, error) {
	args := m.Called(ctx, artworkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Score), args.Error(1)
}

func (m *ScoreRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}
