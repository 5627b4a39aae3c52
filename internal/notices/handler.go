package notices

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/response"
)

// Handler handles notice HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a notices handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /api/societies/:id/notices.
type CreateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Content     string     `json:"content" binding:"required"`
	Type        string     `json:"type"`
	Priority    string     `json:"priority"`
	IsImportant bool       `json:"is_important"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidUntil  *time.Time `json:"valid_until"`
}

// UpdateRequest is the body for PATCH /api/notices/:id. All fields optional.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Type        *string `json:"type"`
	Priority    *string `json:"priority"`
	IsImportant *bool   `json:"is_important"`
}

// CommentRequest is the body for POST /api/notices/:id/comments.
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create handles POST /api/societies/:id/notices (admin only).
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
	noticeType := req.Type
	if noticeType == "" {
		noticeType = models.NoticeTypeGeneral
	}
	if !models.ValidNoticeType(noticeType) {
		response.BadRequest(c, "invalid notice type")
		return
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		response.BadRequest(c, "valid_until must not precede valid_from")
		return
	}

	n := &models.Notice{
		SocietyID:   societyID,
		Title:       req.Title,
		Content:     req.Content,
		Type:        noticeType,
		Priority:    req.Priority,
		IsImportant: req.IsImportant,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		CreatedBy:   c.MustGet(middleware.ContextUserID).(uuid.UUID),
	}
	if err := h.repo.Create(c.Request.Context(), n); err != nil {
		response.Internal(c, "failed to create notice")
		return
	}
	response.Created(c, n)
}

// GetByID handles GET /api/notices/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notice id")
		return
	}
	n, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "notice not found")
			return
		}
		response.Internal(c, "failed to load notice")
		return
	}
	response.OK(c, n)
}

// ListBySociety handles GET /api/societies/:id/notices. ?active=true
// restricts to notices inside their validity window.
func (h *Handler) ListBySociety(c *gin.Context) {
	societyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}
	activeOnly := c.Query("active") == "true"
	list, err := h.repo.ListBySociety(c.Request.Context(), societyID, activeOnly)
	if err != nil {
		response.Internal(c, "failed to load notices")
		return
	}
	response.OK(c, list)
}

// Update handles PATCH /api/notices/:id (admin only).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notice id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	if req.Type != nil && !models.ValidNoticeType(*req.Type) {
		response.BadRequest(c, "invalid notice type")
		return
	}
	p := UpdateParams{
		Title:       req.Title,
		Content:     req.Content,
		Type:        req.Type,
		Priority:    req.Priority,
		IsImportant: req.IsImportant,
	}
	if err := h.repo.Update(c.Request.Context(), id, p); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "notice not found")
			return
		}
		response.Internal(c, "failed to update notice")
		return
	}
	n, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load notice")
		return
	}
	response.OK(c, n)
}

// Delete handles DELETE /api/notices/:id (admin only).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notice id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "notice not found")
			return
		}
		response.Internal(c, "failed to delete notice")
		return
	}
	response.NoContent(c)
}

// CreateComment handles POST /api/notices/:id/comments.
func (h *Handler) CreateComment(c *gin.Context) {
	noticeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notice id")
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "content required")
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), noticeID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "notice not found")
			return
		}
		response.Internal(c, "failed to load notice")
		return
	}
	cm := &models.NoticeComment{
		NoticeID: noticeID,
		AuthorID: c.MustGet(middleware.ContextUserID).(uuid.UUID),
		Content:  req.Content,
	}
	if err := h.repo.CreateComment(c.Request.Context(), cm); err != nil {
		response.Internal(c, "failed to create comment")
		return
	}
	response.Created(c, cm)
}

// ListComments handles GET /api/notices/:id/comments.
func (h *Handler) ListComments(c *gin.Context) {
	noticeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notice id")
		return
	}
	list, err := h.repo.ListComments(c.Request.Context(), noticeID)
	if err != nil {
		response.Internal(c, "failed to load comments")
		return
	}
	response.OK(c, list)
}
