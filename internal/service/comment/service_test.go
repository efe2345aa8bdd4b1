package comment_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/mocks"
	"lomba-poster/internal/repository"
	"lomba-poster/internal/service/comment"
	"lomba-poster/internal/service/moderation"
)

var base = time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC)

type fixture struct {
	artworks *mocks.ArtworkRepository
	comments *mocks.CommentRepository
	svc      comment.Service
	artwork  *domain.Artwork
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	filter, err := moderation.New(moderation.Word{Text: "bodoh"})
	require.NoError(t, err)

	f := &fixture{
		artworks: new(mocks.ArtworkRepository),
		comments: new(mocks.CommentRepository),
		artwork:  &domain.Artwork{ID: uuid.New(), Title: "Hutan Kita", Status: domain.ArtworkApproved},
	}
	f.svc = comment.NewService(f.artworks, f.comments, filter, nil, 20, time.Minute)
	return f
}

func TestAddComment_ReturnsRefreshedArtwork(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := domain.Comment{ID: uuid.New(), ArtworkID: f.artwork.ID, Text: "Keren", CreatedAt: base}
	stored := domain.Comment{ID: uuid.New(), ArtworkID: f.artwork.ID, Text: "Bagus!", CreatedAt: base.Add(time.Minute)}

	f.artworks.On("GetByID", ctx, f.artwork.ID).Return(f.artwork, nil)
	f.comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.Text == "Bagus!" && c.ParentID == nil && c.ArtworkID == f.artwork.ID && c.ID != uuid.Nil
	})).Return(nil)
	f.comments.On("ListByArtwork", ctx, f.artwork.ID).Return([]domain.Comment{existing, stored}, nil)

	updated, err := f.svc.AddComment(ctx, f.artwork.ID, domain.CommentPayload{CommentText: "  Bagus!  "}, nil)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, f.artwork.ID, updated.ID)
	assert.Equal(t, []domain.Comment{existing, stored}, updated.Comments)
	f.comments.AssertExpectations(t)
}

func TestAddComment_ReplyKeepsExistingParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent := uuid.New()

	f.artworks.On("GetByID", ctx, f.artwork.ID).Return(f.artwork, nil)
	f.comments.On("Exists", ctx, f.artwork.ID, parent).Return(true, nil)
	f.comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parent
	})).Return(nil)
	f.comments.On("ListByArtwork", ctx, f.artwork.ID).Return([]domain.Comment{}, nil)

	_, err := f.svc.AddComment(ctx, f.artwork.ID, domain.CommentPayload{CommentText: "setuju"}, &parent)

	require.NoError(t, err)
	f.comments.AssertExpectations(t)
}

func TestAddComment_UnknownParentStoredAsRoot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent := uuid.New()

	f.artworks.On("GetByID", ctx, f.artwork.ID).Return(f.artwork, nil)
	f.comments.On("Exists", ctx, f.artwork.ID, parent).Return(false, nil)
	f.comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.ParentID == nil
	})).Return(nil)
	f.comments.On("ListByArtwork", ctx, f.artwork.ID).Return([]domain.Comment{}, nil)

	_, err := f.svc.AddComment(ctx, f.artwork.ID, domain.CommentPayload{CommentText: "halo"}, &parent)

	require.NoError(t, err)
	f.comments.AssertExpectations(t)
}

func TestAddComment_Rejections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", comment.ErrEmptyComment},
		{"whitespace", "   \n", comment.ErrEmptyComment},
		{"too long", strings.Repeat("a", 21), comment.ErrCommentTooLong},
		{"banned word", "kamu bodoh", comment.ErrCommentRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			updated, err := f.svc.AddComment(context.Background(), f.artwork.ID, domain.CommentPayload{CommentText: tt.text}, nil)

			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, updated)
			f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAddComment_MaxLengthCountsRunes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.artworks.On("GetByID", ctx, f.artwork.ID).Return(f.artwork, nil)
	f.comments.On("Create", ctx, mock.Anything).Return(nil)
	f.comments.On("ListByArtwork", ctx, f.artwork.ID).Return([]domain.Comment{}, nil)

	_, err := f.svc.AddComment(ctx, f.artwork.ID, domain.CommentPayload{CommentText: strings.Repeat("é", 20)}, nil)
	assert.NoError(t, err)
}

func TestAddComment_ArtworkMustBeApproved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pending := &domain.Artwork{ID: uuid.New(), Status: domain.ArtworkPending}
	missing := uuid.New()

	f.artworks.On("GetByID", ctx, pending.ID).Return(pending, nil)
	f.artworks.On("GetByID", ctx, missing).Return(nil, nil)

	_, err := f.svc.AddComment(ctx, pending.ID, domain.CommentPayload{CommentText: "hai"}, nil)
	assert.ErrorIs(t, err, comment.ErrArtworkNotFound)

	_, err = f.svc.AddComment(ctx, missing, domain.CommentPayload{CommentText: "hai"}, nil)
	assert.ErrorIs(t, err, comment.ErrArtworkNotFound)
}

func TestAddComment_StoreFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.artworks.On("GetByID", ctx, f.artwork.ID).Return(f.artwork, nil)
	f.comments.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

	updated, err := f.svc.AddComment(ctx, f.artwork.ID, domain.CommentPayload{CommentText: "hai"}, nil)

	assert.EqualError(t, err, "connection reset")
	assert.Nil(t, updated)
	f.comments.AssertNotCalled(t, "ListByArtwork", mock.Anything, mock.Anything)
}

func TestThread_BuildsForest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := domain.Comment{ID: uuid.New(), ArtworkID: f.artwork.ID, Text: "root", CreatedAt: base}
	reply := domain.Comment{ID: uuid.New(), ArtworkID: f.artwork.ID, ParentID: &root.ID, Text: "reply", CreatedAt: base.Add(time.Minute)}
	newer := domain.Comment{ID: uuid.New(), ArtworkID: f.artwork.ID, Text: "newer", CreatedAt: base.Add(time.Hour)}

	f.artworks.On("GetByID", ctx, f.artwork.ID).Return(f.artwork, nil)
	f.comments.On("ListByArtwork", ctx, f.artwork.ID).Return([]domain.Comment{root, reply, newer}, nil)

	forest, err := f.svc.Thread(ctx, f.artwork.ID)

	require.NoError(t, err)
	require.Len(t, forest, 2)
	assert.Equal(t, newer.ID, forest[0].ID)
	assert.Equal(t, root.ID, forest[1].ID)
	require.Len(t, forest[1].Replies, 1)
	assert.Equal(t, reply.ID, forest[1].Replies[0].ID)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := &domain.Comment{ID: uuid.New(), ArtworkID: f.artwork.ID}
	gone := uuid.New()

	f.comments.On("GetByID", ctx, c.ID).Return(c, nil)
	f.comments.On("Delete", ctx, c.ID).Return(nil)
	f.comments.On("GetByID", ctx, gone).Return(nil, nil)

	assert.NoError(t, f.svc.Delete(ctx, c.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, gone), comment.ErrCommentNotFound)
}

func TestDelete_RaceMapsToNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := &domain.Comment{ID: uuid.New(), ArtworkID: f.artwork.ID}

	f.comments.On("GetByID", ctx, c.ID).Return(c, nil)
	f.comments.On("Delete", ctx, c.ID).Return(repository.ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, c.ID), comment.ErrCommentNotFound)
}
