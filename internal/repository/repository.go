package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("record not found")

type Repositories struct {
	Artwork ArtworkRepository
	Comment CommentRepository
	Score   ScoreRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Artwork: NewArtworkRepository(db),
		Comment: NewCommentRepository(db),
		Score:   NewScoreRepository(db),
	}
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
