package tenants

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/response"
)

// Handler handles tenant administration endpoints (admin only).
type Handler struct {
	repo *Repository
}

// NewHandler creates a tenants handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListBySociety handles GET /api/societies/:id/tenants.
func (h *Handler) ListBySociety(c *gin.Context) {
	societyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}
	list, err := h.repo.ListBySociety(c.Request.Context(), societyID)
	if err != nil {
		response.Internal(c, "failed to load tenants")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /api/tenants/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tenant id")
		return
	}
	t, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "tenant not found")
			return
		}
		response.Internal(c, "failed to load tenant")
		return
	}
	response.OK(c, t)
}

// ListUnassigned handles GET /api/tenants/unassigned.
func (h *Handler) ListUnassigned(c *gin.Context) {
	list, err := h.repo.ListUnassigned(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load tenants")
		return
	}
	response.OK(c, list)
}
