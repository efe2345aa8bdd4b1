package like

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
	ErrMissingVisitor  = errors.New("visitor id is required")
	ErrArtworkNotFound = errors.New("artwork not found")
)

const maxVisitorIDLength = 64

type Result struct {
	ArtworkID uuid.UUID `json:"artwork_id"`
	Liked     bool      `json:"liked"`
	LikeCount int64     `json:"like_count"`
}

type Service interface {
	Like(ctx context.Context, visitorID string, artworkID uuid.UUID) (*Result, error)
	Unlike(ctx context.Context, visitorID string, artworkID uuid.UUID) (*Result, error)
	Liked(ctx context.Context, visitorID string) ([]uuid.UUID, error)
}

// Invalidator drops cached views that include like counts.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type service struct {
	artworkRepo repository.ArtworkRepository
	store       Store
	invalidator Invalidator
}

func NewService(artworkRepo repository.ArtworkRepository, store Store, invalidator Invalidator) Service {
	return &service{
		artworkRepo: artworkRepo,
		store:       store,
		invalidator: invalidator,
	}
}

func normalizeVisitor(visitorID string) (string, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" || len(visitorID) > maxVisitorIDLength {
		return "", ErrMissingVisitor
	}
	return visitorID, nil
}

func (s *service) Like(ctx context.Context, visitorID string, artworkID uuid.UUID) (*Result, error) {
	return s.toggle(ctx, visitorID, artworkID, true)
}

func (s *service) Unlike(ctx context.Context, visitorID string, artworkID uuid.UUID) (*Result, error) {
	return s.toggle(ctx, visitorID, artworkID, false)
}

func (s *service) toggle(ctx context.Context, visitorID string, artworkID uuid.UUID, like bool) (*Result, error) {
	visitorID, err := normalizeVisitor(visitorID)
	if err != nil {
		return nil, err
	}

	artwork, err := s.artworkRepo.GetByID(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if artwork == nil || artwork.Status != domain.ArtworkApproved {
		return nil, ErrArtworkNotFound
	}

	var changed bool
	if like {
		changed, err = s.store.Add(ctx, visitorID, artworkID)
	} else {
		changed, err = s.store.Remove(ctx, visitorID, artworkID)
	}
	if err != nil {
		return nil, err
	}

	count := artwork.LikeCount
	if changed {
		delta, action := int64(1), "like"
		if !like {
			delta, action = -1, "unlike"
		}
		count, err = s.artworkRepo.AdjustLikes(ctx, artworkID, delta)
		if err != nil {
			logrus.WithError(err).WithField("artwork_id", artworkID).Error("failed to adjust like count")
			if like {
				_, _ = s.store.Remove(ctx, visitorID, artworkID)
			} else {
				_, _ = s.store.Add(ctx, visitorID, artworkID)
			}
			return nil, err
		}
		metrics.LikesTotal.WithLabelValues(action).Inc()
		if s.invalidator != nil {
			s.invalidator.Invalidate(ctx)
		}
	}

	return &Result{ArtworkID: artworkID, Liked: like, LikeCount: count}, nil
}

func (s *service) Liked(ctx context.Context, visitorID string) ([]uuid.UUID, error) {
	visitorID, err := normalizeVisitor(visitorID)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, visitorID)
}
