package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type ArtworkStatus string

const (
	ArtworkPending  ArtworkStatus = "pending"
	ArtworkApproved ArtworkStatus = "approved"
	ArtworkRejected ArtworkStatus = "rejected"
)

func (s ArtworkStatus) Valid() bool {
	switch s {
	case ArtworkPending, ArtworkApproved, ArtworkRejected:
		return true
	}
	return false
}

// Artwork is the aggregate that owns its comment collection.
type Artwork struct {
	ID          uuid.UUID     `json:"id" db:"artwork_id"`
	Title       string        `json:"title" db:"title"`
	StudentName string        `json:"student_name" db:"student_name"`
	ClassName   string        `json:"class_name" db:"class_name"`
	Description *string       `json:"description,omitempty" db:"description"`
	ImageURL    string        `json:"image_url" db:"image_url"`
	Status      ArtworkStatus `json:"status" db:"status"`
	LikeCount   int64         `json:"like_count" db:"like_count"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`

	Comments []Comment `json:"comments" db:"-"`
}

// Clone copies the artwork so the caller can hold it as an immutable snapshot.
func (a Artwork) Clone() Artwork {
	out := a
	if a.Description != nil {
		d := *a.Description
		out.Description = &d
	}
	out.Comments = make([]Comment, len(a.Comments))
	for i, c := range a.Comments {
		if c.ParentID != nil {
			p := *c.ParentID
			c.ParentID = &p
		}
		out.Comments[i] = c
	}
	return out
}

type SubmitArtworkInput struct {
	Title       string  `json:"title"`
	StudentName string  `json:"student_name"`
	ClassName   string  `json:"class_name"`
	Description *string `json:"description,omitempty"`
	ImageURL    string  `json:"image_url"`
}

func (i SubmitArtworkInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required, validation.Length(1, 150)),
		validation.Field(&i.StudentName, validation.Required, validation.Length(1, 100)),
		validation.Field(&i.ClassName, validation.Required, validation.Length(1, 30)),
		validation.Field(&i.Description, validation.NilOrNotEmpty, validation.Length(0, 2000)),
		validation.Field(&i.ImageURL, validation.Required, validation.Length(1, 500), validation.By(httpURL)),
	)
}

type ReviewArtworkInput struct {
	Status ArtworkStatus `json:"status"`
}

func (i ReviewArtworkInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Status, validation.Required, validation.In(ArtworkApproved, ArtworkRejected)),
	)
}
