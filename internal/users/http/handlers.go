package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/devcatalog/projects-api/internal/api/http"
	"github.com/devcatalog/projects-api/internal/apperrors"
	"github.com/devcatalog/projects-api/internal/users/domain"
)

// Store is the persistence surface the handlers need.
type Store interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register attaches user routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.store.List(c.Request.Context())
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, apperrors.Validation("%s", httpapi.ValidationMessage(err)))
		return
	}

	user, err := h.store.Create(c.Request.Context(), req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
