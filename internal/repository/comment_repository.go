package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lomba-poster/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Exists(ctx context.Context, artworkID, commentID uuid.UUID) (bool, error)
	ListByArtwork(ctx context.Context, artworkID uuid.UUID) ([]domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, artwork_id, parent_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.ArtworkID, comment.ParentID, comment.Text,
	).Scan(&comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT comment_id, artwork_id, parent_id, text, created_at FROM comments WHERE comment_id = $1`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Exists(ctx context.Context, artworkID, commentID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM comments WHERE comment_id = $1 AND artwork_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, commentID, artworkID)
	return exists, err
}

// ListByArtwork returns the flat collection in arrival order.
func (r *commentRepository) ListByArtwork(ctx context.Context, artworkID uuid.UUID) ([]domain.Comment, error) {
	query := `
		SELECT comment_id, artwork_id, parent_id, text, created_at
		FROM comments
		WHERE artwork_id = $1
		ORDER BY created_at ASC, comment_id ASC`

	comments := []domain.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, artworkID); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
