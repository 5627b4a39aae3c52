package societies

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/response"
)

// Handler handles society HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a societies handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /api/societies.
type CreateRequest struct {
	Name               string `json:"name" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Address            string `json:"address" binding:"required"`
	City               string `json:"city"`
	State              string `json:"state"`
	PostalCode         string `json:"postal_code"`
	TotalUnits         int    `json:"total_units"`
	ManagerName        string `json:"manager_name"`
	ManagerPhone       string `json:"manager_phone"`
}

// UpdateRequest is the body for PUT /api/societies/:id. All fields optional.
type UpdateRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PostalCode   *string `json:"postal_code"`
	TotalUnits   *int    `json:"total_units"`
	ManagerName  *string `json:"manager_name"`
	ManagerPhone *string `json:"manager_phone"`
}

// Create handles POST /api/societies (admin only). The caller becomes the
// owning admin and their user record is linked to the new society.
func (h *Handler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.TotalUnits < 0 {
		response.BadRequest(c, "total_units must not be negative")
		return
	}

	s := &models.Society{
		Name:               strings.TrimSpace(req.Name),
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		Address:            strings.TrimSpace(req.Address),
		City:               req.City,
		State:              req.State,
		PostalCode:         req.PostalCode,
		TotalUnits:         req.TotalUnits,
		AdminID:            adminID,
		ManagerName:        req.ManagerName,
		ManagerPhone:       req.ManagerPhone,
	}
	if err := h.repo.Create(c.Request.Context(), s); err != nil {
		if errors.Is(err, models.ErrDuplicateRegistrationNumber) {
			response.BadRequest(c, models.ErrDuplicateRegistrationNumber.Error())
			return
		}
		response.Internal(c, "failed to create society")
		return
	}
	response.Created(c, s)
}

// GetByID handles GET /api/societies/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}
	s, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "society not found")
			return
		}
		response.Internal(c, "failed to load society")
		return
	}
	response.OK(c, s)
}

// ListByUser handles GET /api/societies/user/:userId — societies owned by
// the given admin.
func (h *Handler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	list, err := h.repo.ListByAdmin(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load societies")
		return
	}
	response.OK(c, list)
}

// ListMine handles GET /api/societies — societies owned by the caller.
func (h *Handler) ListMine(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	list, err := h.repo.ListByAdmin(c.Request.Context(), adminID)
	if err != nil {
		response.Internal(c, "failed to load societies")
		return
	}
	response.OK(c, list)
}

// Update handles PUT /api/societies/:id (admin only, owner only).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}
	if !h.ownedByCaller(c, id) {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	p := UpdateParams{
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		TotalUnits:   req.TotalUnits,
		ManagerName:  req.ManagerName,
		ManagerPhone: req.ManagerPhone,
	}
	if err := h.repo.Update(c.Request.Context(), id, p); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "society not found")
			return
		}
		response.Internal(c, "failed to update society")
		return
	}
	s, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load society")
		return
	}
	response.OK(c, s)
}

// Delete handles DELETE /api/societies/:id (admin only, owner only).
// Properties and other records referencing the society are not cascaded.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}
	if !h.ownedByCaller(c, id) {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "society not found")
			return
		}
		response.Internal(c, "failed to delete society")
		return
	}
	response.NoContent(c)
}

// ownedByCaller loads the society and rejects callers other than its admin.
// Writes the error response and returns false on failure.
func (h *Handler) ownedByCaller(c *gin.Context, id uuid.UUID) bool {
	s, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "society not found")
			return false
		}
		response.Internal(c, "failed to load society")
		return false
	}
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if s.AdminID != adminID {
		response.Forbidden(c, "not the admin of this society")
		return false
	}
	return true
}
