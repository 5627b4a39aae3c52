package maintenance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/societyhub/backend/internal/models"
)

const requestColumns = `id, society_id, property_id, tenant_id, title, COALESCE(description,''), COALESCE(category,''),
	priority, status, assignee_id, completed_at, created_at, updated_at`

// Repository handles maintenance request persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a maintenance repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanRequest(row pgx.Row) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	err := row.Scan(&m.ID, &m.SocietyID, &m.PropertyID, &m.TenantID, &m.Title, &m.Description, &m.Category,
		&m.Priority, &m.Status, &m.AssigneeID, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a maintenance request with status pending.
func (r *Repository) Create(ctx context.Context, m *models.MaintenanceRequest) error {
	const q = `INSERT INTO maintenance_requests (society_id, property_id, tenant_id, title, description, category, priority, status)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''), $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, m.SocietyID, m.PropertyID, m.TenantID, m.Title, m.Description, m.Category, m.Priority, m.Status).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// GetByID returns a request by ID, or models.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM maintenance_requests WHERE id = $1`, id))
}

func (r *Repository) list(ctx context.Context, cond string, args ...interface{}) ([]models.MaintenanceRequest, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+requestColumns+` FROM maintenance_requests `+cond+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.MaintenanceRequest
	for rows.Next() {
		var m models.MaintenanceRequest
		if err := rows.Scan(&m.ID, &m.SocietyID, &m.PropertyID, &m.TenantID, &m.Title, &m.Description, &m.Category,
			&m.Priority, &m.Status, &m.AssigneeID, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListBySociety returns requests for a society, optionally filtered by status.
func (r *Repository) ListBySociety(ctx context.Context, societyID uuid.UUID, status string) ([]models.MaintenanceRequest, error) {
	if status != "" {
		return r.list(ctx, `WHERE society_id = $1 AND status = $2`, societyID, status)
	}
	return r.list(ctx, `WHERE society_id = $1`, societyID)
}

// ListByTenant returns requests filed by a tenant.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.MaintenanceRequest, error) {
	return r.list(ctx, `WHERE tenant_id = $1`, tenantID)
}

// ListByProperty returns requests for a property.
func (r *Repository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.MaintenanceRequest, error) {
	return r.list(ctx, `WHERE property_id = $1`, propertyID)
}

// SetStatus transitions a request. Moving to completed stamps completed_at.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	const q = `UPDATE maintenance_requests SET status = $1,
		completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
		updated_at = NOW()
		WHERE id = $2`
	tag, err := r.pool.Exec(ctx, q, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Assign sets the assignee for a request.
func (r *Repository) Assign(ctx context.Context, id, assigneeID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE maintenance_requests SET assignee_id = $1, updated_at = NOW() WHERE id = $2`, assigneeID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a request.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM maintenance_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
