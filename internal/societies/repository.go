package societies

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/database"
)

const societyColumns = `id, name, registration_number, address, COALESCE(city,''), COALESCE(state,''), COALESCE(postal_code,''),
	total_units, admin_id, COALESCE(manager_name,''), COALESCE(manager_phone,''), created_at, updated_at`

// Repository handles society persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a societies repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanSociety(row pgx.Row) (*models.Society, error) {
	var s models.Society
	err := row.Scan(&s.ID, &s.Name, &s.RegistrationNumber, &s.Address, &s.City, &s.State, &s.PostalCode,
		&s.TotalUnits, &s.AdminID, &s.ManagerName, &s.ManagerPhone, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a society and points the owning admin's user row at it,
// in one transaction. The registration_number unique constraint rejects
// duplicates atomically; violations map to ErrDuplicateRegistrationNumber.
func (r *Repository) Create(ctx context.Context, s *models.Society) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO societies (name, registration_number, address, city, state, postal_code, total_units, admin_id, manager_name, manager_phone)
		VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), $7, $8, NULLIF($9,''), NULLIF($10,''))
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, q, s.Name, s.RegistrationNumber, s.Address, s.City, s.State, s.PostalCode,
		s.TotalUnits, s.AdminID, s.ManagerName, s.ManagerPhone).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, database.ConstraintSocietiesRegNumber) {
			return models.ErrDuplicateRegistrationNumber
		}
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET society_id = $1, updated_at = NOW() WHERE id = $2`, s.ID, s.AdminID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID returns a society by ID, or models.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Society, error) {
	return scanSociety(r.pool.QueryRow(ctx, `SELECT `+societyColumns+` FROM societies WHERE id = $1`, id))
}

// ListByAdmin returns societies owned by the given admin user.
func (r *Repository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]models.Society, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+societyColumns+` FROM societies WHERE admin_id = $1 ORDER BY created_at DESC`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Society
	for rows.Next() {
		var s models.Society
		if err := rows.Scan(&s.ID, &s.Name, &s.RegistrationNumber, &s.Address, &s.City, &s.State, &s.PostalCode,
			&s.TotalUnits, &s.AdminID, &s.ManagerName, &s.ManagerPhone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateParams holds the partial fields accepted by Update. Nil pointers
// leave the column unchanged.
type UpdateParams struct {
	Name         *string
	Address      *string
	City         *string
	State        *string
	PostalCode   *string
	TotalUnits   *int
	ManagerName  *string
	ManagerPhone *string
}

// Update merges the given fields and bumps updated_at. A missing id is
// models.ErrNotFound, never an insert.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) error {
	const q = `UPDATE societies SET
		name = COALESCE($1, name),
		address = COALESCE($2, address),
		city = COALESCE($3, city),
		state = COALESCE($4, state),
		postal_code = COALESCE($5, postal_code),
		total_units = COALESCE($6, total_units),
		manager_name = COALESCE($7, manager_name),
		manager_phone = COALESCE($8, manager_phone),
		updated_at = NOW()
		WHERE id = $9`
	tag, err := r.pool.Exec(ctx, q, p.Name, p.Address, p.City, p.State, p.PostalCode, p.TotalUnits, p.ManagerName, p.ManagerPhone, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes the society row and clears society_id on its users.
// Properties, maintenance requests, notices and payments referencing the
// society are left untouched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM societies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `UPDATE users SET society_id = NULL, updated_at = NOW() WHERE society_id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
