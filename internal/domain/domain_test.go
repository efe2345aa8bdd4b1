package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSubmitArtworkInput_Validate(t *testing.T) {
	valid := SubmitArtworkInput{
		Title:       "Hemat Energi",
		StudentName: "Sari",
		ClassName:   "XI IPA 2",
		ImageURL:    "https://cdn.example.com/posters/1.png",
	}

	tests := []struct {
		name    string
		mutate  func(*SubmitArtworkInput)
		wantErr bool
	}{
		{"valid", func(*SubmitArtworkInput) {}, false},
		{"missing title", func(i *SubmitArtworkInput) { i.Title = "" }, true},
		{"missing student", func(i *SubmitArtworkInput) { i.StudentName = "" }, true},
		{"relative image url", func(i *SubmitArtworkInput) { i.ImageURL = "/posters/1.png" }, true},
		{"ftp image url", func(i *SubmitArtworkInput) { i.ImageURL = "ftp://example.com/1.png" }, true},
		{"empty description", func(i *SubmitArtworkInput) { empty := ""; i.Description = &empty }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScoreInput_Validate(t *testing.T) {
	assert.NoError(t, ScoreInput{Value: 1}.Validate())
	assert.NoError(t, ScoreInput{Value: 100}.Validate())
	assert.Error(t, ScoreInput{Value: 0}.Validate())
	assert.Error(t, ScoreInput{Value: 101}.Validate())
}

func TestReviewArtworkInput_Validate(t *testing.T) {
	assert.NoError(t, ReviewArtworkInput{Status: ArtworkApproved}.Validate())
	assert.NoError(t, ReviewArtworkInput{Status: ArtworkRejected}.Validate())
	assert.Error(t, ReviewArtworkInput{Status: ArtworkPending}.Validate())
	assert.Error(t, ReviewArtworkInput{Status: "archived"}.Validate())
}

func TestArtwork_CloneDoesNotAlias(t *testing.T) {
	parent := uuid.New()
	a := Artwork{
		ID:       uuid.New(),
		Comments: []Comment{{ID: uuid.New(), ParentID: &parent, Text: "Bagus!"}},
	}

	cp := a.Clone()
	cp.Comments[0].Text = "changed"
	*cp.Comments[0].ParentID = uuid.New()
	cp.Comments = append(cp.Comments, Comment{ID: uuid.New()})

	assert.Equal(t, "Bagus!", a.Comments[0].Text)
	assert.Equal(t, parent, *a.Comments[0].ParentID)
	assert.Len(t, a.Comments, 1)
}

func TestPaginationParams_Validate(t *testing.T) {
	p := PaginationParams{Page: 0, PageSize: 500, Sort: "random"}
	p.Validate()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, SortNewest, p.Sort)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPaginatedResponse(t *testing.T) {
	res := NewPaginatedResponse([]int(nil), 2, 10, 25)

	assert.NotNil(t, res.Data)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasNext)
	assert.True(t, res.HasPrev)
}
