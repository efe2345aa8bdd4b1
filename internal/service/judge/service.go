package judge

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/metrics"
	"lomba-poster/internal/repository"
)

var (
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrArtworkNotOpen  = errors.New("only approved artworks can be scored")
	ErrMissingJudge    = errors.New("judge name is required")
)

type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Service interface {
	Score(ctx context.Context, judgeName string, artworkID uuid.UUID, input domain.ScoreInput) (*domain.Score, error)
	MyScores(ctx context.Context, judgeName string) ([]domain.Score, error)
	ForArtwork(ctx context.Context, artworkID uuid.UUID) ([]domain.Score, error)
}

type service struct {
	artworkRepo repository.ArtworkRepository
	scoreRepo   repository.ScoreRepository
	leaderboard Invalidator
}

func NewService(artworkRepo repository.ArtworkRepository, scoreRepo repository.ScoreRepository, leaderboard Invalidator) Service {
	return &service{
		artworkRepo: artworkRepo,
		scoreRepo:   scoreRepo,
		leaderboard: leaderboard,
	}
}

func (s *service) Score(ctx context.Context, judgeName string, artworkID uuid.UUID, input domain.ScoreInput) (*domain.Score, error) {
	judgeName = strings.TrimSpace(judgeName)
	if judgeName == "" {
		return nil, ErrMissingJudge
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	artwork, err := s.artworkRepo.GetByID(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, ErrArtworkNotFound
	}
	if artwork.Status != domain.ArtworkApproved {
		return nil, ErrArtworkNotOpen
	}

	if input.Note != nil {
		note := strings.TrimSpace(*input.Note)
		if note == "" {
			input.Note = nil
		} else {
			input.Note = &note
		}
	}

	score := &domain.Score{
		ID:        uuid.New(),
		ArtworkID: artworkID,
		JudgeName: judgeName,
		Value:     input.Value,
		Note:      input.Note,
	}
	if err := s.scoreRepo.Upsert(ctx, score); err != nil {
		return nil, err
	}

	metrics.ScoresSubmitted.Inc()
	logrus.WithFields(logrus.Fields{
		"artwork_id": artworkID,
		"judge":      judgeName,
		"value":      score.Value,
	}).Info("score recorded")

	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}
	return score, nil
}

func (s *service) MyScores(ctx context.Context, judgeName string) ([]domain.Score, error) {
	judgeName = strings.TrimSpace(judgeName)
	if judgeName == "" {
		return nil, ErrMissingJudge
	}
	return s.scoreRepo.ListByJudge(ctx, judgeName)
}

func (s *service) ForArtwork(ctx context.Context, artworkID uuid.UUID) ([]domain.Score, error) {
	artwork, err := s.artworkRepo.GetByID(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, ErrArtworkNotFound
	}
	return s.scoreRepo.ListByArtwork(ctx, artworkID)
}
