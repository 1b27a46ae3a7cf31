package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	techdomain "github.com/devcatalog/projects-api/internal/technologies/domain"
	userdomain "github.com/devcatalog/projects-api/internal/users/domain"
)

// Project represents a code project. The id is immutable; updated_at is
// stamped on every mutation.
type Project struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	RepositoryURL string    `json:"repository_url"`
	Language      string    `json:"language"`
	Rating        *float64  `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProjectWithRelations is the read-model returned by single-project endpoints:
// the project plus its technologies (sorted by name) and users with their
// roles (sorted by user name). It is never persisted.
type ProjectWithRelations struct {
	Project
	Technologies []techdomain.Technology   `json:"technologies"`
	Users        []userdomain.UserWithRole `json:"users"`
}

// CreateProjectRequest is the payload for POST /projects. A nil id list means
// "no associations requested"; an empty list is also valid and creates none.
type CreateProjectRequest struct {
	Name          string       `json:"name" binding:"required,min=1,max=255"`
	Description   string       `json:"description" binding:"required,min=1,max=2000"`
	RepositoryURL string       `json:"repository_url" binding:"required,url"`
	Language      string       `json:"language" binding:"required,min=1,max=100"`
	Rating        *float64     `json:"rating" binding:"omitempty,gte=0,lte=5"`
	TechnologyIDs *[]uuid.UUID `json:"technology_ids"`
	UserIDs       *[]uuid.UUID `json:"user_ids"`
}

// NewProject builds a Project from a create request with a fresh id and
// identical created_at/updated_at timestamps.
func NewProject(req CreateProjectRequest) Project {
	now := time.Now().UTC()
	return Project{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		RepositoryURL: req.RepositoryURL,
		Language:      req.Language,
		Rating:        req.Rating,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NullableFloat distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present in the payload.
type NullableFloat struct {
	Set   bool
	Value *float64
}

func (f *NullableFloat) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(data, []byte("null")) {
		f.Value = nil
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

func (f NullableFloat) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// UpdateProjectRequest is the payload for PUT /projects/{id}. Absent fields
// leave the current values untouched. For the association lists a present but
// empty list replaces all associations with none, while an absent field leaves
// them as they are; this absent/empty distinction is load-bearing.
type UpdateProjectRequest struct {
	Name          *string       `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string       `json:"description" binding:"omitempty,min=1,max=2000"`
	RepositoryURL *string       `json:"repository_url" binding:"omitempty,url"`
	Language      *string       `json:"language" binding:"omitempty,min=1,max=100"`
	Rating        NullableFloat `json:"rating"`
	TechnologyIDs *[]uuid.UUID  `json:"technology_ids"`
	UserIDs       *[]uuid.UUID  `json:"user_ids"`
}

// Validate covers the rules the binding tags cannot express.
func (r UpdateProjectRequest) Validate() error {
	if r.Rating.Set && r.Rating.Value != nil {
		if *r.Rating.Value < 0 || *r.Rating.Value > 5 {
			return ErrRatingOutOfRange
		}
	}
	return nil
}

// Apply copies the present fields onto p and stamps updated_at, regardless of
// whether any field actually changed.
func (r UpdateProjectRequest) Apply(p *Project) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.RepositoryURL != nil {
		p.RepositoryURL = *r.RepositoryURL
	}
	if r.Language != nil {
		p.Language = *r.Language
	}
	if r.Rating.Set {
		p.Rating = r.Rating.Value
	}
	p.UpdatedAt = time.Now().UTC()
}
