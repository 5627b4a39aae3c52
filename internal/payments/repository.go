package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/societyhub/backend/internal/models"
)

const paymentColumns = `id, society_id, property_id, tenant_id, amount_cents, currency, type, status,
	COALESCE(method,''), COALESCE(transaction_id,''), due_date, paid_at, created_at, updated_at`

// Repository handles payment persistence, including the append-only
// history, receipt and reminder records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a payments repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.SocietyID, &p.PropertyID, &p.TenantID, &p.AmountCents, &p.Currency, &p.Type, &p.Status,
		&p.Method, &p.TransactionID, &p.DueDate, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a payment with status pending.
func (r *Repository) Create(ctx context.Context, p *models.Payment) error {
	const q = `INSERT INTO payments (society_id, property_id, tenant_id, amount_cents, currency, type, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, p.SocietyID, p.PropertyID, p.TenantID, p.AmountCents, p.Currency, p.Type, p.Status, p.DueDate).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns a payment by ID, or models.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
}

func (r *Repository) list(ctx context.Context, cond string, args ...interface{}) ([]models.Payment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments `+cond+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.SocietyID, &p.PropertyID, &p.TenantID, &p.AmountCents, &p.Currency, &p.Type, &p.Status,
			&p.Method, &p.TransactionID, &p.DueDate, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListBySociety returns payments for a society, optionally filtered by status.
func (r *Repository) ListBySociety(ctx context.Context, societyID uuid.UUID, status string) ([]models.Payment, error) {
	if status != "" {
		return r.list(ctx, `WHERE society_id = $1 AND status = $2`, societyID, status)
	}
	return r.list(ctx, `WHERE society_id = $1`, societyID)
}

// ListByTenant returns a tenant's payments.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Payment, error) {
	return r.list(ctx, `WHERE tenant_id = $1`, tenantID)
}

// TransitionParams describes a status transition request.
type TransitionParams struct {
	ToStatus      string
	ChangedBy     uuid.UUID
	Note          string
	Method        string
	TransactionID string
}

// Transition moves a payment to a new status in one transaction: the
// payment row is updated, a payment_history row is appended, and a receipt
// is issued when the payment completes.
func (r *Repository) Transition(ctx context.Context, id uuid.UUID, p TransitionParams) (*models.Payment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var fromStatus string
	err = tx.QueryRow(ctx, `SELECT status FROM payments WHERE id = $1 FOR UPDATE`, id).Scan(&fromStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	const upd = `UPDATE payments SET status = $1,
		method = COALESCE(NULLIF($2,''), method),
		transaction_id = COALESCE(NULLIF($3,''), transaction_id),
		paid_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE paid_at END,
		updated_at = NOW()
		WHERE id = $4`
	if _, err := tx.Exec(ctx, upd, p.ToStatus, p.Method, p.TransactionID, id); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO payment_history (payment_id, from_status, to_status, changed_by, note)
		VALUES ($1, $2, $3, $4, NULLIF($5,''))`, id, fromStatus, p.ToStatus, p.ChangedBy, p.Note); err != nil {
		return nil, err
	}

	if p.ToStatus == models.PaymentStatusCompleted {
		receiptNumber := newReceiptNumber(id)
		if _, err := tx.Exec(ctx, `INSERT INTO payment_receipts (payment_id, receipt_number, amount_cents)
			SELECT id, $1, amount_cents FROM payments WHERE id = $2`, receiptNumber, id); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// newReceiptNumber derives a human-readable receipt number.
func newReceiptNumber(paymentID uuid.UUID) string {
	short := strings.ToUpper(strings.ReplaceAll(paymentID.String(), "-", "")[:8])
	return fmt.Sprintf("RCP-%s-%s", time.Now().Format("20060102"), short)
}

// ListHistory returns the status transitions of a payment, oldest first.
func (r *Repository) ListHistory(ctx context.Context, paymentID uuid.UUID) ([]models.PaymentHistory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, payment_id, from_status, to_status, changed_by, COALESCE(note,''), created_at
		FROM payment_history WHERE payment_id = $1 ORDER BY created_at ASC`, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.PaymentHistory
	for rows.Next() {
		var h models.PaymentHistory
		if err := rows.Scan(&h.ID, &h.PaymentID, &h.FromStatus, &h.ToStatus, &h.ChangedBy, &h.Note, &h.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// GetReceipt returns the receipt issued for a payment, or models.ErrNotFound.
func (r *Repository) GetReceipt(ctx context.Context, paymentID uuid.UUID) (*models.PaymentReceipt, error) {
	var rc models.PaymentReceipt
	err := r.pool.QueryRow(ctx, `SELECT id, payment_id, receipt_number, amount_cents, issued_at
		FROM payment_receipts WHERE payment_id = $1 ORDER BY issued_at DESC LIMIT 1`, paymentID).
		Scan(&rc.ID, &rc.PaymentID, &rc.ReceiptNumber, &rc.AmountCents, &rc.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &rc, nil
}

// RecordReminder appends a payment_reminders row. Called by the worker
// after a reminder job is processed.
func (r *Repository) RecordReminder(ctx context.Context, rem *models.PaymentReminder) error {
	const q = `INSERT INTO payment_reminders (payment_id, requested_by, message)
		VALUES ($1, $2, NULLIF($3,''))
		RETURNING id, sent_at`
	return r.pool.QueryRow(ctx, q, rem.PaymentID, rem.RequestedBy, rem.Message).Scan(&rem.ID, &rem.SentAt)
}

// ListReminders returns reminders recorded for a payment, newest first.
func (r *Repository) ListReminders(ctx context.Context, paymentID uuid.UUID) ([]models.PaymentReminder, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, payment_id, requested_by, COALESCE(message,''), sent_at
		FROM payment_reminders WHERE payment_id = $1 ORDER BY sent_at DESC`, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.PaymentReminder
	for rows.Next() {
		var rem models.PaymentReminder
		if err := rows.Scan(&rem.ID, &rem.PaymentID, &rem.RequestedBy, &rem.Message, &rem.SentAt); err != nil {
			return nil, err
		}
		list = append(list, rem)
	}
	return list, rows.Err()
}

// Delete removes a payment; history, receipts and reminders cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
