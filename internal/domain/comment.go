package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultCommentMaxLength = 1000

type Comment struct {
	ID        uuid.UUID  `json:"id" db:"comment_id"`
	ArtworkID uuid.UUID  `json:"artwork_id" db:"artwork_id"`
	ParentID  *uuid.UUID `json:"parent_id" db:"parent_id"`
	Text      string     `json:"text" db:"text"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// CommentPayload is the body a visitor submits; comments are anonymous.
type CommentPayload struct {
	CommentText string `json:"comment_text"`
}

type AddCommentInput struct {
	CommentText string     `json:"comment_text"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

func (i AddCommentInput) Payload() CommentPayload {
	return CommentPayload{CommentText: i.CommentText}
}

// AddCommentResult is the wire shape of the comment store reply. On failure
// only Message is set and no partial artwork is returned.
type AddCommentResult struct {
	Success        bool     `json:"success"`
	UpdatedArtwork *Artwork `json:"updated_artwork,omitempty"`
	Code           string   `json:"code,omitempty"`
	Message        string   `json:"message,omitempty"`
}
