package http

import (
	"context"

	"github.com/google/uuid"

	"github.com/devcatalog/projects-api/internal/projects/domain"
)

// Store is the persistence surface the handlers need.
type Store interface {
	List(ctx context.Context, q domain.ListQuery) ([]domain.Project, int64, error)
	GetWithRelations(ctx context.Context, id uuid.UUID) (*domain.ProjectWithRelations, error)
	Create(ctx context.Context, req domain.CreateProjectRequest) (*domain.ProjectWithRelations, error)
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateProjectRequest) (*domain.ProjectWithRelations, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// ListResponse is the paginated envelope of GET /projects.
type ListResponse struct {
	Data       []domain.Project  `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}
