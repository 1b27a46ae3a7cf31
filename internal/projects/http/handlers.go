package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	httpapi "github.com/devcatalog/projects-api/internal/api/http"
	"github.com/devcatalog/projects-api/internal/apperrors"
	"github.com/devcatalog/projects-api/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	var q domain.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpapi.Error(c, apperrors.Validation("%s", httpapi.ValidationMessage(err)))
		return
	}

	items, total, err := h.store.List(c.Request.Context(), q)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Data:       items,
		Pagination: domain.NewPagination(q.EffectivePage(), q.EffectivePageSize(), total),
	})
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpapi.Error(c, apperrors.Validation("Invalid project id: %s", c.Param("id")))
		return
	}

	project, err := h.store.GetWithRelations(c.Request.Context(), id)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, apperrors.Validation("%s", httpapi.ValidationMessage(err)))
		return
	}

	project, err := h.store.Create(c.Request.Context(), req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpapi.Error(c, apperrors.Validation("Invalid project id: %s", c.Param("id")))
		return
	}

	var req domain.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, apperrors.Validation("%s", httpapi.ValidationMessage(err)))
		return
	}
	if err := req.Validate(); err != nil {
		httpapi.Error(c, apperrors.Validation("%s", err.Error()))
		return
	}

	project, err := h.store.Update(c.Request.Context(), id, req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpapi.Error(c, apperrors.Validation("Invalid project id: %s", c.Param("id")))
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		httpapi.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
