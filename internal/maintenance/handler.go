package maintenance

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/properties"
	"github.com/societyhub/backend/pkg/response"
)

// Handler handles maintenance request HTTP endpoints.
type Handler struct {
	repo     *Repository
	propRepo *properties.Repository
}

// NewHandler creates a maintenance handler.
func NewHandler(repo *Repository, propRepo *properties.Repository) *Handler {
	return &Handler{repo: repo, propRepo: propRepo}
}

// CreateRequest is the body for POST /api/maintenance.
type CreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// Create handles POST /api/maintenance (tenant only). The request is filed
// against the tenant's assigned property.
func (h *Handler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	priority := req.Priority
	if priority == "" {
		priority = models.MaintenancePriorityMedium
	}
	if !models.ValidMaintenancePriority(priority) {
		response.BadRequest(c, "invalid priority")
		return
	}

	prop, err := h.propRepo.GetByTenant(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.BadRequest(c, "no property assigned to your account")
			return
		}
		response.Internal(c, "failed to load property")
		return
	}

	m := &models.MaintenanceRequest{
		SocietyID:   prop.SocietyID,
		PropertyID:  prop.ID,
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		Status:      models.MaintenanceStatusPending,
	}
	if err := h.repo.Create(c.Request.Context(), m); err != nil {
		response.Internal(c, "failed to create maintenance request")
		return
	}
	response.Created(c, m)
}

// GetByID handles GET /api/maintenance/:id. Tenants may only read their
// own requests.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}
	m, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "maintenance request not found")
			return
		}
		response.Internal(c, "failed to load maintenance request")
		return
	}
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if role != string(models.RoleAdmin) && m.TenantID != userID {
		response.Forbidden(c, "not your maintenance request")
		return
	}
	response.OK(c, m)
}

// ListBySociety handles GET /api/societies/:id/maintenance (admin only).
// Accepts an optional ?status= filter.
func (h *Handler) ListBySociety(c *gin.Context) {
	societyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}
	status := c.Query("status")
	if status != "" && !models.ValidMaintenanceStatus(status) {
		response.BadRequest(c, "invalid status")
		return
	}
	list, err := h.repo.ListBySociety(c.Request.Context(), societyID, status)
	if err != nil {
		response.Internal(c, "failed to load maintenance requests")
		return
	}
	response.OK(c, list)
}

// ListMine handles GET /api/maintenance — the tenant's own requests.
func (h *Handler) ListMine(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	list, err := h.repo.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		response.Internal(c, "failed to load maintenance requests")
		return
	}
	response.OK(c, list)
}

// SetStatus handles PATCH /api/maintenance/:id/status (admin only).
func (h *Handler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status required")
		return
	}
	if !models.ValidMaintenanceStatus(req.Status) {
		response.BadRequest(c, "invalid status")
		return
	}
	if err := h.repo.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "maintenance request not found")
			return
		}
		response.Internal(c, "failed to update status")
		return
	}
	m, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load maintenance request")
		return
	}
	response.OK(c, m)
}

// Assign handles PATCH /api/maintenance/:id/assign (admin only).
func (h *Handler) Assign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}
	var req struct {
		AssigneeID uuid.UUID `json:"assignee_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "assignee_id required")
		return
	}
	if err := h.repo.Assign(c.Request.Context(), id, req.AssigneeID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "maintenance request not found")
			return
		}
		response.Internal(c, "failed to assign request")
		return
	}
	m, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load maintenance request")
		return
	}
	response.OK(c, m)
}

// Delete handles DELETE /api/maintenance/:id (admin only).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "maintenance request not found")
			return
		}
		response.Internal(c, "failed to delete maintenance request")
		return
	}
	response.NoContent(c)
}
