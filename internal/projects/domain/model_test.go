package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func TestNewProject(t *testing.T) {
	req := CreateProjectRequest{
		Name:          "Test Project",
		Description:   "A test project",
		RepositoryURL: "https://github.com/test/repo",
		Language:      "Go",
		Rating:        floatPtr(4.5),
	}

	p := NewProject(req)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", p.ID.String())
	assert.Equal(t, "Test Project", p.Name)
	assert.Equal(t, "A test project", p.Description)
	assert.Equal(t, "https://github.com/test/repo", p.RepositoryURL)
	assert.Equal(t, "Go", p.Language)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 4.5, *p.Rating)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestUpdateApplyPartial(t *testing.T) {
	p := NewProject(CreateProjectRequest{
		Name:          "Original",
		Description:   "Original description",
		RepositoryURL: "https://github.com/original/repo",
		Language:      "Go",
	})
	created := p.CreatedAt

	req := UpdateProjectRequest{
		Name:     strPtr("Updated"),
		Language: strPtr("Rust"),
		Rating:   NullableFloat{Set: true, Value: floatPtr(3.5)},
	}
	req.Apply(&p)

	assert.Equal(t, "Updated", p.Name)
	assert.Equal(t, "Original description", p.Description)
	assert.Equal(t, "https://github.com/original/repo", p.RepositoryURL)
	assert.Equal(t, "Rust", p.Language)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 3.5, *p.Rating)
	assert.Equal(t, created, p.CreatedAt)
	assert.False(t, p.UpdatedAt.Before(created))
}

func TestUpdateApplyStampsUpdatedAtWithoutChanges(t *testing.T) {
	p := NewProject(CreateProjectRequest{
		Name:          "Original",
		Description:   "desc",
		RepositoryURL: "https://example.com/repo",
		Language:      "Go",
	})
	before := p.UpdatedAt

	UpdateProjectRequest{}.Apply(&p)

	assert.False(t, p.UpdatedAt.Before(before))
	assert.Equal(t, "Original", p.Name)
}

func TestUpdateApplyClearsRatingOnExplicitNull(t *testing.T) {
	p := NewProject(CreateProjectRequest{
		Name:          "Rated",
		Description:   "desc",
		RepositoryURL: "https://example.com/repo",
		Language:      "Go",
		Rating:        floatPtr(4.0),
	})

	req := UpdateProjectRequest{Rating: NullableFloat{Set: true, Value: nil}}
	req.Apply(&p)

	assert.Nil(t, p.Rating)
}

func TestNullableFloatUnmarshal(t *testing.T) {
	t.Run("absent field", func(t *testing.T) {
		var req UpdateProjectRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &req))
		assert.False(t, req.Rating.Set)
	})

	t.Run("explicit null", func(t *testing.T) {
		var req UpdateProjectRequest
		require.NoError(t, json.Unmarshal([]byte(`{"rating":null}`), &req))
		assert.True(t, req.Rating.Set)
		assert.Nil(t, req.Rating.Value)
	})

	t.Run("value", func(t *testing.T) {
		var req UpdateProjectRequest
		require.NoError(t, json.Unmarshal([]byte(`{"rating":4.2}`), &req))
		assert.True(t, req.Rating.Set)
		require.NotNil(t, req.Rating.Value)
		assert.Equal(t, 4.2, *req.Rating.Value)
	})
}

func TestUpdateValidateRatingRange(t *testing.T) {
	assert.NoError(t, UpdateProjectRequest{}.Validate())
	assert.NoError(t, UpdateProjectRequest{Rating: NullableFloat{Set: true}}.Validate())
	assert.NoError(t, UpdateProjectRequest{Rating: NullableFloat{Set: true, Value: floatPtr(5)}}.Validate())
	assert.Error(t, UpdateProjectRequest{Rating: NullableFloat{Set: true, Value: floatPtr(5.1)}}.Validate())
	assert.Error(t, UpdateProjectRequest{Rating: NullableFloat{Set: true, Value: floatPtr(-0.1)}}.Validate())
}

func TestListFieldAbsentVersusEmpty(t *testing.T) {
	var absent UpdateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.Nil(t, absent.TechnologyIDs)

	var empty UpdateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"technology_ids":[]}`), &empty))
	require.NotNil(t, empty.TechnologyIDs)
	assert.Empty(t, *empty.TechnologyIDs)
}
