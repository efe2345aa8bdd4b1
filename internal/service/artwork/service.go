package artwork

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/repository"
)

var (
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrInvalidStatus   = errors.New("invalid artwork status")
)

// CommentLister supplies the flat comment collection of an artwork.
type CommentLister interface {
	List(ctx context.Context, artworkID uuid.UUID) ([]domain.Comment, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Service interface {
	Submit(ctx context.Context, input domain.SubmitArtworkInput) (*domain.Artwork, error)
	// Get returns an approved artwork together with its comments.
	Get(ctx context.Context, id uuid.UUID) (*domain.Artwork, error)
	Gallery(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Artwork], error)
	List(ctx context.Context, status *domain.ArtworkStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Artwork], error)
	Review(ctx context.Context, id uuid.UUID, input domain.ReviewArtworkInput) (*domain.Artwork, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	artworkRepo repository.ArtworkRepository
	comments    CommentLister
	leaderboard Invalidator
}

func NewService(artworkRepo repository.ArtworkRepository, comments CommentLister, leaderboard Invalidator) Service {
	return &service{
		artworkRepo: artworkRepo,
		comments:    comments,
		leaderboard: leaderboard,
	}
}

func (s *service) Submit(ctx context.Context, input domain.SubmitArtworkInput) (*domain.Artwork, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.StudentName = strings.TrimSpace(input.StudentName)
	input.ClassName = strings.TrimSpace(input.ClassName)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.Description != nil {
		d := strings.TrimSpace(*input.Description)
		if d == "" {
			input.Description = nil
		} else {
			input.Description = &d
		}
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	artwork := &domain.Artwork{
		ID:          uuid.New(),
		Title:       input.Title,
		StudentName: input.StudentName,
		ClassName:   input.ClassName,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Status:      domain.ArtworkPending,
		Comments:    []domain.Comment{},
	}
	if err := s.artworkRepo.Create(ctx, artwork); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"artwork_id": artwork.ID,
		"class":      artwork.ClassName,
	}).Info("artwork submitted")
	return artwork, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Artwork, error) {
	artwork, err := s.artworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if artwork == nil || artwork.Status != domain.ArtworkApproved {
		return nil, ErrArtworkNotFound
	}

	comments, err := s.comments.List(ctx, id)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	artwork.Comments = comments
	return artwork, nil
}

func (s *service) Gallery(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Artwork], error) {
	approved := domain.ArtworkApproved
	return s.List(ctx, &approved, params)
}

func (s *service) List(ctx context.Context, status *domain.ArtworkStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Artwork], error) {
	if status != nil && !status.Valid() {
		return domain.PaginatedResponse[domain.Artwork]{}, ErrInvalidStatus
	}
	params.Validate()

	artworks, total, err := s.artworkRepo.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Artwork]{}, err
	}
	return domain.NewPaginatedResponse(artworks, params.Page, params.PageSize, total), nil
}

func (s *service) Review(ctx context.Context, id uuid.UUID, input domain.ReviewArtworkInput) (*domain.Artwork, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	artwork, err := s.artworkRepo.UpdateStatus(ctx, id, input.Status)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, ErrArtworkNotFound
	}

	logrus.WithFields(logrus.Fields{
		"artwork_id": id,
		"status":     input.Status,
	}).Info("artwork reviewed")
	s.invalidate(ctx)
	return artwork, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.artworkRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrArtworkNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}
}
