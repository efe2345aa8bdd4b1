package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/thread"
)

const baseURL = "http://lomba.test"

func newTestClient() *Client {
	c := New(baseURL+"/", WithVisitorID("visitor-1"))
	gock.InterceptClient(c.HTTPClient())
	return c
}

func TestAddComment_Success(t *testing.T) {
	defer gock.Off()
	c := newTestClient()

	artworkID := uuid.New()
	parent := uuid.New()
	commentID := uuid.New()

	gock.New(baseURL).
		Post("/api/v1/artworks/"+artworkID.String()+"/comments").
		MatchHeader("Content-Type", "application/json").
		MatchHeader("X-Visitor-ID", "visitor-1").
		JSON(map[string]interface{}{"comment_text": "Bagus!", "parent_id": parent.String()}).
		Reply(http.StatusCreated).
		JSON(map[string]interface{}{
			"success": true,
			"updated_artwork": map[string]interface{}{
				"id":     artworkID.String(),
				"status": "approved",
				"comments": []map[string]interface{}{
					{"id": commentID.String(), "artwork_id": artworkID.String(), "parent_id": parent.String(), "text": "Bagus!", "created_at": "2025-08-17T10:00:00Z"},
				},
			},
		})

	updated, err := c.AddComment(context.Background(), artworkID, domain.CommentPayload{CommentText: "Bagus!"}, &parent)

	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, commentID, updated.Comments[0].ID)
	assert.True(t, gock.IsDone())
}

func TestAddComment_FailureCarriesMessage(t *testing.T) {
	defer gock.Off()
	c := newTestClient()
	artworkID := uuid.New()

	gock.New(baseURL).
		Post("/api/v1/artworks/" + artworkID.String() + "/comments").
		Reply(http.StatusUnprocessableEntity).
		JSON(map[string]interface{}{"success": false, "code": "VALIDATION_ERROR", "message": "Comment contains words that are not allowed"})

	updated, err := c.AddComment(context.Background(), artworkID, domain.CommentPayload{CommentText: "x"}, nil)

	assert.Nil(t, updated)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Comment contains words that are not allowed", err.Error())
}

func TestAddComment_UnsuccessfulBody(t *testing.T) {
	defer gock.Off()
	c := newTestClient()
	artworkID := uuid.New()

	gock.New(baseURL).
		Post("/api/v1/artworks/" + artworkID.String() + "/comments").
		Reply(http.StatusOK).
		JSON(map[string]interface{}{"success": false, "message": "Artwork tidak ditemukan"})

	_, err := c.AddComment(context.Background(), artworkID, domain.CommentPayload{CommentText: "x"}, nil)
	assert.EqualError(t, err, "Artwork tidak ditemukan")
}

func TestGetArtwork_NotFound(t *testing.T) {
	defer gock.Off()
	c := newTestClient()
	artworkID := uuid.New()

	gock.New(baseURL).
		Get("/api/v1/artworks/" + artworkID.String()).
		Reply(http.StatusNotFound).
		BodyString("not json")

	_, err := c.GetArtwork(context.Background(), artworkID)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "api: status 404", err.Error())
}

func TestThreadAndLeaderboard(t *testing.T) {
	defer gock.Off()
	c := newTestClient()
	artworkID := uuid.New()
	rootID := uuid.New()

	forest := thread.Build([]thread.Item{
		{Kind: thread.Confirmed, ID: rootID, Text: "root", CreatedAt: time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC)},
		{Kind: thread.Confirmed, ID: uuid.New(), ParentID: &rootID, Text: "reply", CreatedAt: time.Date(2025, 8, 17, 10, 1, 0, 0, time.UTC)},
	})

	gock.New(baseURL).
		Get("/api/v1/artworks/" + artworkID.String() + "/comments").
		Reply(http.StatusOK).
		JSON(map[string]interface{}{"artwork_id": artworkID, "comments": forest})
	gock.New(baseURL).
		Get("/api/v1/leaderboard").
		MatchParam("limit", "3").
		Reply(http.StatusOK).
		JSON(map[string]interface{}{"entries": []domain.LeaderboardEntry{{Rank: 1, ArtworkID: artworkID, AverageScore: 91.5}}})

	nodes, err := c.Thread(context.Background(), artworkID)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, rootID.String(), nodes[0].ID)
	require.Len(t, nodes[0].Replies, 1)
	assert.Equal(t, "reply", nodes[0].Replies[0].Text)

	entries, err := c.Leaderboard(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 91.5, entries[0].AverageScore)
}

func TestClientDrivesSection(t *testing.T) {
	defer gock.Off()
	c := newTestClient()
	artworkID := uuid.New()

	gock.New(baseURL).
		Post("/api/v1/artworks/" + artworkID.String() + "/comments").
		Reply(http.StatusInternalServerError).
		JSON(map[string]interface{}{"success": false, "code": "INTERNAL_ERROR", "message": "Internal server error"})

	var reported error
	s := thread.NewSection(domain.Artwork{ID: artworkID}, c, thread.WithOnError(func(err error) { reported = err }))

	err := s.Submit(context.Background(), "Bagus!")

	require.Error(t, err)
	assert.EqualError(t, reported, "Internal server error")
	assert.Empty(t, s.Comments())
}
