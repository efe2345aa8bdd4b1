package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lomba-poster/internal/domain"
)

type ArtworkRepository interface {
	Create(ctx context.Context, artwork *domain.Artwork) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Artwork, error)
	List(ctx context.Context, status *domain.ArtworkStatus, params domain.PaginationParams) ([]domain.Artwork, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ArtworkStatus) (*domain.Artwork, error)
	AdjustLikes(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type artworkRepository struct {
	db *sqlx.DB
}

func NewArtworkRepository(db *sqlx.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

const artworkColumns = `artwork_id, title, student_name, class_name, description, image_url, status, like_count, created_at, updated_at`

func (r *artworkRepository) Create(ctx context.Context, artwork *domain.Artwork) error {
	query := `
		INSERT INTO artworks (artwork_id, title, student_name, class_name, description, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING like_count, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		artwork.ID, artwork.Title, artwork.StudentName, artwork.ClassName,
		artwork.Description, artwork.ImageURL, artwork.Status,
	).Scan(&artwork.LikeCount, &artwork.CreatedAt, &artwork.UpdatedAt)
}

func (r *artworkRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Artwork, error) {
	var artwork domain.Artwork
	query := `SELECT ` + artworkColumns + ` FROM artworks WHERE artwork_id = $1`

	err := r.db.GetContext(ctx, &artwork, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}

func (r *artworkRepository) List(ctx context.Context, status *domain.ArtworkStatus, params domain.PaginationParams) ([]domain.Artwork, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM artworks WHERE ($1::text IS NULL OR status = $1)`
	if err := r.db.GetContext(ctx, &total, countQuery, status); err != nil {
		return nil, 0, err
	}

	order := `created_at DESC`
	if params.Sort == domain.SortPopular {
		order = `like_count DESC, created_at DESC`
	}

	query := `
		SELECT ` + artworkColumns + `
		FROM artworks
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY ` + order + `
		LIMIT $2 OFFSET $3`

	artworks := []domain.Artwork{}
	if err := r.db.SelectContext(ctx, &artworks, query, status, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}
	return artworks, total, nil
}

func (r *artworkRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ArtworkStatus) (*domain.Artwork, error) {
	var artwork domain.Artwork
	query := `
		UPDATE artworks SET status = $2, updated_at = NOW()
		WHERE artwork_id = $1
		RETURNING ` + artworkColumns

	err := r.db.GetContext(ctx, &artwork, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}

// AdjustLikes changes like_count by delta, never below zero, and returns the new count.
func (r *artworkRepository) AdjustLikes(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	var count int64
	query := `
		UPDATE artworks SET like_count = GREATEST(like_count + $2, 0)
		WHERE artwork_id = $1
		RETURNING like_count`

	err := r.db.GetContext(ctx, &count, query, id, delta)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return count, err
}

func (r *artworkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM artworks WHERE artwork_id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
