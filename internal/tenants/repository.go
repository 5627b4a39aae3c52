package tenants

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/societyhub/backend/internal/models"
)

// Repository handles tenant queries (users with role tenant joined with
// their assigned property).
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a tenants repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Tenant is a tenant user together with their assigned unit, if any.
type Tenant struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone,omitempty"`
	SocietyID  *uuid.UUID `json:"society_id,omitempty"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	UnitNumber string     `json:"unit_number,omitempty"`
	JoinedAt   time.Time  `json:"joined_at"`
}

const tenantSelect = `SELECT u.id, u.email, u.full_name, COALESCE(u.phone,''), u.society_id, p.id, COALESCE(p.unit_number,''), u.created_at
	FROM users u
	LEFT JOIN properties p ON p.tenant_id = u.id
	WHERE u.role = 'tenant'`

func scanTenant(row pgx.Row) (*Tenant, error) {
	var t Tenant
	err := row.Scan(&t.ID, &t.Email, &t.FullName, &t.Phone, &t.SocietyID, &t.PropertyID, &t.UnitNumber, &t.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetByID returns one tenant with their property, or models.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return scanTenant(r.pool.QueryRow(ctx, tenantSelect+` AND u.id = $1`, id))
}

// ListBySociety returns tenants linked to the society, ordered by name.
func (r *Repository) ListBySociety(ctx context.Context, societyID uuid.UUID) ([]Tenant, error) {
	rows, err := r.pool.Query(ctx, tenantSelect+` AND u.society_id = $1 ORDER BY u.full_name, u.email`, societyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.Email, &t.FullName, &t.Phone, &t.SocietyID, &t.PropertyID, &t.UnitNumber, &t.JoinedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListUnassigned returns tenant users not yet linked to any society, for
// the admin's assignment picker.
func (r *Repository) ListUnassigned(ctx context.Context) ([]Tenant, error) {
	rows, err := r.pool.Query(ctx, tenantSelect+` AND u.society_id IS NULL ORDER BY u.full_name, u.email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.Email, &t.FullName, &t.Phone, &t.SocietyID, &t.PropertyID, &t.UnitNumber, &t.JoinedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
