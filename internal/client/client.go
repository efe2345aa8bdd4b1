// Package client talks to the lomba-poster HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/thread"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	visitorID  string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithVisitorID(id string) Option {
	return func(c *Client) { c.visitorID = id }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient exposes the underlying client so tests can intercept it.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) GetArtwork(ctx context.Context, artworkID uuid.UUID) (*domain.Artwork, error) {
	var artwork domain.Artwork
	if err := c.do(ctx, http.MethodGet, "/api/v1/artworks/"+artworkID.String(), nil, &artwork); err != nil {
		return nil, err
	}
	return &artwork, nil
}

// AddComment posts a comment and returns the refreshed artwork. It satisfies
// thread.Store.
func (c *Client) AddComment(ctx context.Context, artworkID uuid.UUID, payload domain.CommentPayload, parentID *uuid.UUID) (*domain.Artwork, error) {
	body := domain.AddCommentInput{CommentText: payload.CommentText, ParentID: parentID}

	var result domain.AddCommentResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/artworks/"+artworkID.String()+"/comments", body, &result); err != nil {
		return nil, err
	}
	if !result.Success || result.UpdatedArtwork == nil {
		msg := result.Message
		if msg == "" {
			msg = "comment was not saved"
		}
		return nil, &APIError{Status: http.StatusOK, Code: result.Code, Message: msg}
	}
	return result.UpdatedArtwork, nil
}

// Thread fetches the server-built comment forest as raw nodes.
func (c *Client) Thread(ctx context.Context, artworkID uuid.UUID) ([]ThreadNode, error) {
	var out struct {
		Comments []ThreadNode `json:"comments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/artworks/"+artworkID.String()+"/comments", nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	path := "/api/v1/leaderboard"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out struct {
		Entries []domain.LeaderboardEntry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// ThreadNode mirrors the JSON form of thread.Node.
type ThreadNode struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	ParentID    *uuid.UUID   `json:"parent_id"`
	CreatedAt   time.Time    `json:"created_at"`
	Provisional bool         `json:"provisional,omitempty"`
	Replies     []ThreadNode `json:"replies"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.visitorID != "" {
		req.Header.Set("X-Visitor-ID", c.visitorID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var failure struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &failure) == nil {
			apiErr.Code = failure.Code
			apiErr.Message = failure.Message
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

var _ thread.Store = (*Client)(nil)
