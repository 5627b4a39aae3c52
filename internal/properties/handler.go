package properties

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/response"
)

// Handler handles property HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a properties handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /api/societies/:id/properties.
type CreateRequest struct {
	UnitNumber string `json:"unit_number" binding:"required"`
	Type       string `json:"type"`
	Bedrooms   int    `json:"bedrooms"`
	Bathrooms  int    `json:"bathrooms"`
	AreaSqft   int    `json:"area_sqft"`
	RentCents  int64  `json:"rent_cents"`
	Status     string `json:"status"`
}

// UpdateRequest is the body for PATCH /api/properties/:id. All fields optional.
type UpdateRequest struct {
	UnitNumber *string `json:"unit_number"`
	Type       *string `json:"type"`
	Bedrooms   *int    `json:"bedrooms"`
	Bathrooms  *int    `json:"bathrooms"`
	AreaSqft   *int    `json:"area_sqft"`
	RentCents  *int64  `json:"rent_cents"`
	Status     *string `json:"status"`
}

// AssignTenantRequest is the body for POST /api/properties/:id/tenant.
type AssignTenantRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
}

// Create handles POST /api/societies/:id/properties (admin only).
func (h *Handler) Create(c *gin.Context) {
	societyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	status := req.Status
	if status == "" {
		status = models.PropertyStatusVacant
	}
	if !models.ValidPropertyStatus(status) {
		response.BadRequest(c, "invalid status")
		return
	}

	p := &models.Property{
		SocietyID:  societyID,
		UnitNumber: req.UnitNumber,
		Type:       req.Type,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		AreaSqft:   req.AreaSqft,
		RentCents:  req.RentCents,
		Status:     status,
	}
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		response.Internal(c, "failed to create property")
		return
	}
	response.Created(c, p)
}

// GetByID handles GET /api/properties/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}
	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "property not found")
			return
		}
		response.Internal(c, "failed to load property")
		return
	}
	response.OK(c, p)
}

// ListBySociety handles GET /api/societies/:id/properties. Accepts an
// optional ?status= filter.
func (h *Handler) ListBySociety(c *gin.Context) {
	societyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}
	status := c.Query("status")
	if status != "" && !models.ValidPropertyStatus(status) {
		response.BadRequest(c, "invalid status")
		return
	}
	list, err := h.repo.ListBySociety(c.Request.Context(), societyID, status)
	if err != nil {
		response.Internal(c, "failed to load properties")
		return
	}
	response.OK(c, list)
}

// Mine handles GET /api/properties/mine — the tenant's assigned property.
func (h *Handler) Mine(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	p, err := h.repo.GetByTenant(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "no property assigned")
			return
		}
		response.Internal(c, "failed to load property")
		return
	}
	response.OK(c, p)
}

// Update handles PATCH /api/properties/:id (admin only).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	if req.Status != nil && !models.ValidPropertyStatus(*req.Status) {
		response.BadRequest(c, "invalid status")
		return
	}
	p := UpdateParams{
		UnitNumber: req.UnitNumber,
		Type:       req.Type,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		AreaSqft:   req.AreaSqft,
		RentCents:  req.RentCents,
		Status:     req.Status,
	}
	if err := h.repo.Update(c.Request.Context(), id, p); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "property not found")
			return
		}
		response.Internal(c, "failed to update property")
		return
	}
	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load property")
		return
	}
	response.OK(c, updated)
}

// Delete handles DELETE /api/properties/:id (admin only).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "property not found")
			return
		}
		response.Internal(c, "failed to delete property")
		return
	}
	response.NoContent(c)
}

// AssignTenant handles POST /api/properties/:id/tenant (admin only).
func (h *Handler) AssignTenant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}
	var req AssignTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "tenant_id required")
		return
	}
	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "property not found")
			return
		}
		response.Internal(c, "failed to load property")
		return
	}
	if p.TenantID != nil {
		response.BadRequest(c, "property already occupied")
		return
	}
	if err := h.repo.AssignTenant(c.Request.Context(), id, req.TenantID, p.SocietyID); err != nil {
		response.Internal(c, "failed to assign tenant")
		return
	}
	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load property")
		return
	}
	response.OK(c, updated)
}

// UnassignTenant handles DELETE /api/properties/:id/tenant (admin only).
func (h *Handler) UnassignTenant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}
	if err := h.repo.UnassignTenant(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "property not found")
			return
		}
		response.Internal(c, "failed to unassign tenant")
		return
	}
	response.NoContent(c)
}
