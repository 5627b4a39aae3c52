package dashboard

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/societies"
	"github.com/societyhub/backend/pkg/response"
)

// Handler handles GET /api/societies/:id/summary.
type Handler struct {
	pool        *pgxpool.Pool
	societyRepo *societies.Repository
}

// NewHandler creates a dashboard handler.
func NewHandler(pool *pgxpool.Pool, societyRepo *societies.Repository) *Handler {
	return &Handler{pool: pool, societyRepo: societyRepo}
}

// SummaryResponse is the JSON shape for the admin dashboard.
type SummaryResponse struct {
	TotalProperties      int   `json:"total_properties"`
	VacantProperties     int   `json:"vacant_properties"`
	OccupiedProperties   int   `json:"occupied_properties"`
	TenantCount          int   `json:"tenant_count"`
	OpenMaintenance      int   `json:"open_maintenance"`
	ActiveNotices        int   `json:"active_notices"`
	PendingPayments      int   `json:"pending_payments"`
	PendingPaymentsCents int64 `json:"pending_payments_cents"`
}

// GetBySociety handles GET /api/societies/:id/summary (admin only).
func (h *Handler) GetBySociety(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid society id")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.societyRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "society not found")
			return
		}
		response.Internal(c, "failed to load society")
		return
	}

	var out SummaryResponse
	if err := h.propertyCounts(ctx, id, &out); err != nil {
		response.Internal(c, "failed to load property counts")
		return
	}
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE society_id = $1 AND role = 'tenant'`, id).
		Scan(&out.TenantCount); err != nil {
		response.Internal(c, "failed to load tenant count")
		return
	}
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM maintenance_requests
		WHERE society_id = $1 AND status IN ('pending', 'in_progress')`, id).
		Scan(&out.OpenMaintenance); err != nil {
		response.Internal(c, "failed to load maintenance counts")
		return
	}
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notices
		WHERE society_id = $1
		AND (valid_from IS NULL OR valid_from <= NOW())
		AND (valid_until IS NULL OR valid_until >= NOW())`, id).
		Scan(&out.ActiveNotices); err != nil {
		response.Internal(c, "failed to load notice counts")
		return
	}
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(amount_cents), 0) FROM payments
		WHERE society_id = $1 AND status = 'pending'`, id).
		Scan(&out.PendingPayments, &out.PendingPaymentsCents); err != nil {
		response.Internal(c, "failed to load payment counts")
		return
	}

	response.OK(c, out)
}

func (h *Handler) propertyCounts(ctx context.Context, societyID uuid.UUID, out *SummaryResponse) error {
	const q = `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE status = 'vacant'),
		COUNT(*) FILTER (WHERE status = 'occupied')
		FROM properties WHERE society_id = $1`
	return h.pool.QueryRow(ctx, q, societyID).
		Scan(&out.TotalProperties, &out.VacantProperties, &out.OccupiedProperties)
}
