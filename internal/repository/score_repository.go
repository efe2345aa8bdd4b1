package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lomba-poster/internal/domain"
)

type ScoreRepository interface {
	Upsert(ctx context.Context, score *domain.Score) error
	ListByJudge(ctx context.Context, judgeName string) ([]domain.Score, error)
	ListByArtwork(ctx context.Context, artworkID uuid.UUID) ([]domain.Score, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type scoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

// Upsert keeps one score per judge per artwork; a second call overwrites the
// value and note but keeps the original id and created_at.
func (r *scoreRepository) Upsert(ctx context.Context, score *domain.Score) error {
	query := `
		INSERT INTO scores (score_id, artwork_id, judge_name, value, note)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (artwork_id, judge_name)
		DO UPDATE SET value = EXCLUDED.value, note = EXCLUDED.note, updated_at = NOW()
		RETURNING score_id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		score.ID, score.ArtworkID, score.JudgeName, score.Value, score.Note,
	).Scan(&score.ID, &score.CreatedAt, &score.UpdatedAt)
}

func (r *scoreRepository) ListByJudge(ctx context.Context, judgeName string) ([]domain.Score, error) {
	scores := []domain.Score{}
	query := `
		SELECT score_id, artwork_id, judge_name, value, note, created_at, updated_at
		FROM scores WHERE judge_name = $1
		ORDER BY updated_at DESC`
	err := r.db.SelectContext(ctx, &scores, query, judgeName)
	return scores, err
}

func (r *scoreRepository) ListByArtwork(ctx context.Context, artworkID uuid.UUID) ([]domain.Score, error) {
	scores := []domain.Score{}
	query := `
		SELECT score_id, artwork_id, judge_name, value, note, created_at, updated_at
		FROM scores WHERE artwork_id = $1
		ORDER BY judge_name`
	err := r.db.SelectContext(ctx, &scores, query, artworkID)
	return scores, err
}

func (r *scoreRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries := []domain.LeaderboardEntry{}
	query := `
		SELECT
			a.artwork_id, a.title, a.student_name, a.class_name, a.image_url, a.like_count,
			COALESCE(AVG(s.value), 0)::float8 AS average_score,
			COUNT(s.score_id)::int AS judge_count
		FROM artworks a
		LEFT JOIN scores s ON s.artwork_id = a.artwork_id
		WHERE a.status = 'approved'
		GROUP BY a.artwork_id
		ORDER BY average_score DESC, judge_count DESC, a.like_count DESC, a.created_at ASC
		LIMIT $1`
	err := r.db.SelectContext(ctx, &entries, query, limit)
	return entries, err
}
