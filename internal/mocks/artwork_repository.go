package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lomba-poster/internal/domain"
)

type ArtworkRepository struct {
	mock.Mock
}

func (m *ArtworkRepository) Create(ctx context.Context, artwork *domain.Artwork) error {
	args := m.Called(ctx, artwork)
	return args.Error(0)
}

func (m *ArtworkRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *ArtworkRepository) List(ctx context.Context, status *domain.ArtworkStatus, params domain.PaginationParams) ([]domain.Artwork, int64, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Artwork), args.Get(1).(int64), args.Error(2)
}

func (m *ArtworkRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ArtworkStatus) (*domain.Artwork, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *ArtworkRepository) AdjustLikes(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ArtworkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
