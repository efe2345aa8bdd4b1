package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	MinScore = 1
	MaxScore = 100
)

type Score struct {
	ID        uuid.UUID `json:"id" db:"score_id"`
	ArtworkID uuid.UUID `json:"artwork_id" db:"artwork_id"`
	JudgeName string    `json:"judge_name" db:"judge_name"`
	Value     int       `json:"value" db:"value"`
	Note      *string   `json:"note,omitempty" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type ScoreInput struct {
	Value int     `json:"value"`
	Note  *string `json:"note,omitempty"`
}

func (i ScoreInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Value, validation.Required, validation.Min(MinScore), validation.Max(MaxScore)),
		validation.Field(&i.Note, validation.Length(0, 500)),
	)
}

type LeaderboardEntry struct {
	Rank         int       `json:"rank" db:"-"`
	ArtworkID    uuid.UUID `json:"artwork_id" db:"artwork_id"`
	Title        string    `json:"title" db:"title"`
	StudentName  string    `json:"student_name" db:"student_name"`
	ClassName    string    `json:"class_name" db:"class_name"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	AverageScore float64   `json:"average_score" db:"average_score"`
	JudgeCount   int       `json:"judge_count" db:"judge_count"`
	LikeCount    int64     `json:"like_count" db:"like_count"`
}
