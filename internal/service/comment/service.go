package comment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/metrics"
	"lomba-poster/internal/repository"
	"lomba-poster/internal/service/moderation"
	"lomba-poster/internal/thread"
)

var (
	ErrEmptyComment    = errors.New("comment must not be empty")
	ErrCommentTooLong  = errors.New("comment is too long")
	ErrCommentRejected = errors.New("comment contains words that are not allowed")
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrCommentNotFound = errors.New("comment not found")
)

const cacheName = "comments"

type Service interface {
	// AddComment stores a comment and returns the refreshed artwork with its
	// full comment collection.
	AddComment(ctx context.Context, artworkID uuid.UUID, payload domain.CommentPayload, parentID *uuid.UUID) (*domain.Artwork, error)
	List(ctx context.Context, artworkID uuid.UUID) ([]domain.Comment, error)
	Thread(ctx context.Context, artworkID uuid.UUID) ([]*thread.Node, error)
	Delete(ctx context.Context, commentID uuid.UUID) error
}

type service struct {
	artworkRepo repository.ArtworkRepository
	commentRepo repository.CommentRepository
	filter      *moderation.Filter
	redis       *redis.Client
	maxLength   int
	cacheTTL    time.Duration
}

func NewService(artworkRepo repository.ArtworkRepository, commentRepo repository.CommentRepository, filter *moderation.Filter, redis *redis.Client, maxLength int, cacheTTL time.Duration) Service {
	if maxLength < 1 {
		maxLength = domain.DefaultCommentMaxLength
	}
	return &service{
		artworkRepo: artworkRepo,
		commentRepo: commentRepo,
		filter:      filter,
		redis:       redis,
		maxLength:   maxLength,
		cacheTTL:    cacheTTL,
	}
}

func cacheKey(artworkID uuid.UUID) string {
	return fmt.Sprintf("comments:%s", artworkID)
}

func (s *service) approvedArtwork(ctx context.Context, artworkID uuid.UUID) (*domain.Artwork, error) {
	artwork, err := s.artworkRepo.GetByID(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if artwork == nil || artwork.Status != domain.ArtworkApproved {
		return nil, ErrArtworkNotFound
	}
	return artwork, nil
}

func (s *service) AddComment(ctx context.Context, artworkID uuid.UUID, payload domain.CommentPayload, parentID *uuid.UUID) (*domain.Artwork, error) {
	text := strings.TrimSpace(payload.CommentText)
	if text == "" {
		metrics.CommentsSubmitted.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, ErrEmptyComment
	}
	if utf8.RuneCountInString(text) > s.maxLength {
		metrics.CommentsSubmitted.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, ErrCommentTooLong
	}
	if word := s.filter.Match(text); word != "" {
		metrics.CommentsSubmitted.WithLabelValues(metrics.ResultRejected).Inc()
		logrus.WithFields(logrus.Fields{
			"artwork_id": artworkID,
			"word":       word,
		}).Info("comment rejected by moderation filter")
		return nil, ErrCommentRejected
	}

	artwork, err := s.approvedArtwork(ctx, artworkID)
	if err != nil {
		if !errors.Is(err, ErrArtworkNotFound) {
			metrics.CommentsSubmitted.WithLabelValues(metrics.ResultError).Inc()
		}
		return nil, err
	}

	if parentID != nil {
		exists, err := s.commentRepo.Exists(ctx, artworkID, *parentID)
		if err != nil {
			metrics.CommentsSubmitted.WithLabelValues(metrics.ResultError).Inc()
			return nil, err
		}
		if !exists {
			logrus.WithFields(logrus.Fields{
				"artwork_id": artworkID,
				"parent_id":  *parentID,
			}).Warn("reply target not found, storing comment as root")
			parentID = nil
		}
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		ArtworkID: artworkID,
		ParentID:  parentID,
		Text:      text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		metrics.CommentsSubmitted.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}
	metrics.CommentsSubmitted.WithLabelValues(metrics.ResultAccepted).Inc()
	previous, _ := s.cached(ctx, artworkID)
	s.invalidate(ctx, artworkID)

	// the next read refills the cache
	comments, err := s.commentRepo.ListByArtwork(ctx, artworkID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"artwork_id": artworkID,
			"comment_id": comment.ID,
		}).Warn("comment persisted but reload failed, returning last known list")
		comments = append(previous, *comment)
	}
	artwork.Comments = comments

	return artwork, nil
}

func (s *service) List(ctx context.Context, artworkID uuid.UUID) ([]domain.Comment, error) {
	if comments, ok := s.cached(ctx, artworkID); ok {
		return comments, nil
	}

	comments, err := s.commentRepo.ListByArtwork(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, artworkID, comments)
	return comments, nil
}

func (s *service) Thread(ctx context.Context, artworkID uuid.UUID) ([]*thread.Node, error) {
	if _, err := s.approvedArtwork(ctx, artworkID); err != nil {
		return nil, err
	}
	comments, err := s.List(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	return thread.Build(thread.FromComments(comments)), nil
}

func (s *service) Delete(ctx context.Context, commentID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	s.invalidate(ctx, comment.ArtworkID)
	return nil
}

func (s *service) cached(ctx context.Context, artworkID uuid.UUID) ([]domain.Comment, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, cacheKey(artworkID)).Bytes()
	if err != nil {
		metrics.RecordCacheMiss(cacheName)
		return nil, false
	}
	var comments []domain.Comment
	if json.Unmarshal(raw, &comments) != nil {
		metrics.RecordCacheMiss(cacheName)
		return nil, false
	}
	metrics.RecordCacheHit(cacheName)
	return comments, true
}

func (s *service) store(ctx context.Context, artworkID uuid.UUID, comments []domain.Comment) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	if data, err := json.Marshal(comments); err == nil {
		_ = s.redis.Set(ctx, cacheKey(artworkID), data, s.cacheTTL).Err()
	}
}

func (s *service) invalidate(ctx context.Context, artworkID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, cacheKey(artworkID)).Err(); err != nil {
		logrus.WithError(err).WithField("artwork_id", artworkID).Warn("failed to invalidate comment cache")
	}
}
