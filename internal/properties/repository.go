package properties

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/societyhub/backend/internal/models"
)

const propertyColumns = `id, society_id, unit_number, COALESCE(type,''), bedrooms, bathrooms, area_sqft, rent_cents, status, tenant_id, created_at, updated_at`

// Repository handles property persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a properties repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(&p.ID, &p.SocietyID, &p.UnitNumber, &p.Type, &p.Bedrooms, &p.Bathrooms,
		&p.AreaSqft, &p.RentCents, &p.Status, &p.TenantID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a property.
func (r *Repository) Create(ctx context.Context, p *models.Property) error {
	const q = `INSERT INTO properties (society_id, unit_number, type, bedrooms, bathrooms, area_sqft, rent_cents, status)
		VALUES ($1, $2, NULLIF($3,''), $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, p.SocietyID, p.UnitNumber, p.Type, p.Bedrooms, p.Bathrooms, p.AreaSqft, p.RentCents, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns a property by ID, or models.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return scanProperty(r.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id))
}

// GetByTenant returns the property currently assigned to a tenant,
// or models.ErrNotFound.
func (r *Repository) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Property, error) {
	return scanProperty(r.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE tenant_id = $1`, tenantID))
}

// ListBySociety returns properties of a society, optionally filtered by
// status. An unknown society yields an empty list, not an error.
func (r *Repository) ListBySociety(ctx context.Context, societyID uuid.UUID, status string) ([]models.Property, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE society_id = $1`
	args := []interface{}{societyID}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, status)
	}
	rows, err := r.pool.Query(ctx, q+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Property
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(&p.ID, &p.SocietyID, &p.UnitNumber, &p.Type, &p.Bedrooms, &p.Bathrooms,
			&p.AreaSqft, &p.RentCents, &p.Status, &p.TenantID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateParams holds the partial fields accepted by Update.
type UpdateParams struct {
	UnitNumber *string
	Type       *string
	Bedrooms   *int
	Bathrooms  *int
	AreaSqft   *int
	RentCents  *int64
	Status     *string
}

// Update merges fields and bumps updated_at; models.ErrNotFound for a
// missing id (no upsert).
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) error {
	const q = `UPDATE properties SET
		unit_number = COALESCE($1, unit_number),
		type = COALESCE($2, type),
		bedrooms = COALESCE($3, bedrooms),
		bathrooms = COALESCE($4, bathrooms),
		area_sqft = COALESCE($5, area_sqft),
		rent_cents = COALESCE($6, rent_cents),
		status = COALESCE($7, status),
		updated_at = NOW()
		WHERE id = $8`
	tag, err := r.pool.Exec(ctx, q, p.UnitNumber, p.Type, p.Bedrooms, p.Bathrooms, p.AreaSqft, p.RentCents, p.Status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a property. Maintenance requests and payments referencing
// it are left untouched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AssignTenant occupies the property with the tenant and links the tenant's
// user row to the society, in one transaction.
func (r *Repository) AssignTenant(ctx context.Context, propertyID, tenantID, societyID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE properties SET tenant_id = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		tenantID, models.PropertyStatusOccupied, propertyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `UPDATE users SET society_id = $1, updated_at = NOW() WHERE id = $2`, societyID, tenantID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UnassignTenant vacates the property and clears the tenant's society link.
func (r *Repository) UnassignTenant(ctx context.Context, propertyID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var tenantID *uuid.UUID
	err = tx.QueryRow(ctx, `SELECT tenant_id FROM properties WHERE id = $1 FOR UPDATE`, propertyID).Scan(&tenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE properties SET tenant_id = NULL, status = $1, updated_at = NOW() WHERE id = $2`,
		models.PropertyStatusVacant, propertyID); err != nil {
		return err
	}
	if tenantID != nil {
		if _, err := tx.Exec(ctx, `UPDATE users SET society_id = NULL, updated_at = NOW() WHERE id = $1`, *tenantID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
