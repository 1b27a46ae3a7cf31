package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/devcatalog/projects-api/internal/api/http"
	"github.com/devcatalog/projects-api/internal/apperrors"
	"github.com/devcatalog/projects-api/internal/technologies/domain"
)

// Store is the persistence surface the handlers need.
type Store interface {
	List(ctx context.Context) ([]domain.Technology, error)
	Create(ctx context.Context, req domain.CreateTechnologyRequest) (*domain.Technology, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register attaches technology routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
}

func (h *Handler) list(c *gin.Context) {
	technologies, err := h.store.List(c.Request.Context())
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, technologies)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateTechnologyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, apperrors.Validation("%s", httpapi.ValidationMessage(err)))
		return
	}

	tech, err := h.store.Create(c.Request.Context(), req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, tech)
}
