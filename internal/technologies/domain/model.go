package domain

import (
	"time"

	"github.com/google/uuid"
)

// Technology represents a technology that projects can be tagged with.
// Names are globally unique.
type Technology struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTechnologyRequest is the payload for POST /technologies.
type CreateTechnologyRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// New builds a Technology with a fresh id and creation timestamp.
func New(req CreateTechnologyRequest) Technology {
	return Technology{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
}
