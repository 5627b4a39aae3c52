package payments

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/queue"
	"github.com/societyhub/backend/pkg/response"
)

// Handler handles payment HTTP endpoints.
type Handler struct {
	repo   *Repository
	queue  *queue.Queue
	logger *zap.Logger
}

// NewHandler creates a payments handler. queue may be nil when Redis is
// not configured; reminders are then rejected.
func NewHandler(repo *Repository, q *queue.Queue, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, queue: q, logger: logger}
}

// CreateRequest is the body for POST /api/societies/:id/payments.
type CreateRequest struct {
	PropertyID  uuid.UUID  `json:"property_id" binding:"required"`
	TenantID    uuid.UUID  `json:"tenant_id" binding:"required"`
	AmountCents int64      `json:"amount_cents" binding:"required"`
	Currency    string     `json:"currency"`
	Type        string     `json:"type"`
	DueDate     *time.Time `json:"due_date"`
}

// TransitionRequest is the body for PATCH /api/payments/:id/status.
type TransitionRequest struct {
	Status        string `json:"status" binding:"required"`
	Note          string `json:"note"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
}

// ReminderRequest is the body for POST /api/payments/:id/remind.
type ReminderRequest struct {
	Message string `json:"message"`
}

// Create handles POST /api/societies/:id/payments (admin only).
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
	if req.AmountCents <= 0 {
		response.BadRequest(c, "amount_cents must be positive")
		return
	}
	payType := req.Type
	if payType == "" {
		payType = models.PaymentTypeRent
	}
	if !models.ValidPaymentType(payType) {
		response.BadRequest(c, "invalid payment type")
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	p := &models.Payment{
		SocietyID:   societyID,
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Type:        payType,
		Status:      models.PaymentStatusPending,
		DueDate:     req.DueDate,
	}
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		h.logger.Error("create payment", zap.Error(err))
		response.Internal(c, "failed to create payment")
		return
	}
	response.Created(c, p)
}

// GetByID handles GET /api/payments/:id. Tenants may only read their own.
func (h *Handler) GetByID(c *gin.Context) {
	p, ok := h.loadForCaller(c)
	if !ok {
		return
	}
	response.OK(c, p)
}

// ListBySociety handles GET /api/societies/:id/payments (admin only).
// Accepts an optional ?status= filter.
func (h *Handler) ListBySociety(c *gin.Context) {
	societyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}
	status := c.Query("status")
	if status != "" && !models.ValidPaymentStatus(status) {
		response.BadRequest(c, "invalid status")
		return
	}
	list, err := h.repo.ListBySociety(c.Request.Context(), societyID, status)
	if err != nil {
		response.Internal(c, "failed to load payments")
		return
	}
	response.OK(c, list)
}

// ListMine handles GET /api/payments — the tenant's own payments.
func (h *Handler) ListMine(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	list, err := h.repo.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		response.Internal(c, "failed to load payments")
		return
	}
	response.OK(c, list)
}

// Transition handles PATCH /api/payments/:id/status (admin only). Each
// transition appends a history row; completing issues a receipt.
func (h *Handler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return
	}
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status required")
		return
	}
	if !models.ValidPaymentStatus(req.Status) {
		response.BadRequest(c, "invalid status")
		return
	}
	p, err := h.repo.Transition(c.Request.Context(), id, TransitionParams{
		ToStatus:      req.Status,
		ChangedBy:     c.MustGet(middleware.ContextUserID).(uuid.UUID),
		Note:          req.Note,
		Method:        req.Method,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "payment not found")
			return
		}
		h.logger.Error("payment transition", zap.Error(err), zap.String("payment_id", id.String()))
		response.Internal(c, "failed to update payment")
		return
	}
	response.OK(c, p)
}

// History handles GET /api/payments/:id/history.
func (h *Handler) History(c *gin.Context) {
	p, ok := h.loadForCaller(c)
	if !ok {
		return
	}
	list, err := h.repo.ListHistory(c.Request.Context(), p.ID)
	if err != nil {
		response.Internal(c, "failed to load payment history")
		return
	}
	response.OK(c, list)
}

// Receipt handles GET /api/payments/:id/receipt.
func (h *Handler) Receipt(c *gin.Context) {
	p, ok := h.loadForCaller(c)
	if !ok {
		return
	}
	rc, err := h.repo.GetReceipt(c.Request.Context(), p.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "no receipt issued for this payment")
			return
		}
		response.Internal(c, "failed to load receipt")
		return
	}
	response.OK(c, rc)
}

// Remind handles POST /api/payments/:id/remind (admin only). The reminder
// is processed asynchronously by the worker.
func (h *Handler) Remind(c *gin.Context) {
	if h.queue == nil {
		response.Internal(c, "reminders unavailable")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return
	}
	var req ReminderRequest
	_ = c.ShouldBindJSON(&req)

	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "payment not found")
			return
		}
		response.Internal(c, "failed to load payment")
		return
	}
	if p.Status != models.PaymentStatusPending {
		response.BadRequest(c, "reminders apply to pending payments only")
		return
	}

	payload := queue.PaymentReminderPayload{
		PaymentID:   p.ID,
		RequestedBy: c.MustGet(middleware.ContextUserID).(uuid.UUID),
		Message:     req.Message,
	}
	if err := h.queue.EnqueuePaymentReminder(c.Request.Context(), payload); err != nil {
		h.logger.Error("enqueue reminder", zap.Error(err))
		response.Internal(c, "failed to enqueue reminder")
		return
	}
	response.OK(c, gin.H{"queued": true})
}

// Reminders handles GET /api/payments/:id/reminders (admin only).
func (h *Handler) Reminders(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return
	}
	list, err := h.repo.ListReminders(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load reminders")
		return
	}
	response.OK(c, list)
}

// loadForCaller fetches the payment and enforces tenant ownership. Admins
// may read any payment. Writes the error response and returns false on
// failure.
func (h *Handler) loadForCaller(c *gin.Context) (*models.Payment, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return nil, false
	}
	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "payment not found")
			return nil, false
		}
		response.Internal(c, "failed to load payment")
		return nil, false
	}
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if role != string(models.RoleAdmin) && p.TenantID != userID {
		response.Forbidden(c, "not your payment")
		return nil, false
	}
	return p, true
}
