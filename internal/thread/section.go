package thread

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"lomba-poster/internal/domain"
)

var ErrEmptyComment = errors.New("comment must not be empty")

// Store persists comments for an artwork. On success it returns the
// authoritative artwork, which contains the new comment under its permanent id.
// On failure the error carries a human readable reason.
type Store interface {
	AddComment(ctx context.Context, artworkID uuid.UUID, payload domain.CommentPayload, parentID *uuid.UUID) (*domain.Artwork, error)
}

type Option func(*Section)

// WithOnChange registers a callback invoked with every new authoritative artwork.
func WithOnChange(fn func(domain.Artwork)) Option {
	return func(s *Section) { s.onChange = fn }
}

// WithOnError registers a callback invoked when the store rejects a submission.
func WithOnError(fn func(error)) Option {
	return func(s *Section) { s.onError = fn }
}

// Section is the comment box of a single artwork view. It owns the transient
// reply target and the submission flag, and drives a Reconciler against a Store.
type Section struct {
	artworkID uuid.UUID
	store     Store
	rec       *Reconciler

	mu         sync.Mutex
	replyTo    *uuid.UUID
	submitting int

	onChange func(domain.Artwork)
	onError  func(error)
}

func NewSection(artwork domain.Artwork, store Store, opts ...Option) *Section {
	s := &Section{
		artworkID: artwork.ID,
		store:     store,
		rec:       NewReconciler(artwork),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Section) ReplyTo(commentID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := commentID
	s.replyTo = &id
}

func (s *Section) CancelReply() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replyTo = nil
}

func (s *Section) ReplyTarget() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replyTo == nil {
		return nil
	}
	id := *s.replyTo
	return &id
}

// Submitting is true while at least one submission awaits the store.
// Presentation uses it to disable the input.
func (s *Section) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting > 0
}

// Submit shows the comment immediately as a provisional entry, then blocks on
// the store. The reply target is consumed up front, before the store answers.
// Whitespace-only text returns ErrEmptyComment without touching any state.
func (s *Section) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyComment
	}

	s.mu.Lock()
	parentID := s.replyTo
	s.replyTo = nil
	s.submitting++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting--
		s.mu.Unlock()
	}()

	pending, err := s.rec.Apply(text, parentID)
	if err != nil {
		return ErrEmptyComment
	}

	updated, err := s.store.AddComment(ctx, s.artworkID, domain.CommentPayload{CommentText: text}, parentID)
	if err == nil && updated == nil {
		err = errors.New("store returned no artwork")
	}
	if err != nil {
		s.rec.Rollback(pending)
		if s.onError != nil {
			s.onError(err)
		}
		return fmt.Errorf("add comment: %w", err)
	}

	s.rec.Commit(pending, *updated)
	if s.onChange != nil {
		s.onChange(updated.Clone())
	}
	return nil
}

// Sync adopts a newer authoritative artwork pushed by the owning view.
func (s *Section) Sync(artwork domain.Artwork) {
	s.rec.Reset(artwork)
}

func (s *Section) Artwork() domain.Artwork {
	return s.rec.Confirmed()
}

func (s *Section) Comments() []Item {
	return s.rec.Comments()
}

func (s *Section) Forest() []*Node {
	return s.rec.Forest()
}
