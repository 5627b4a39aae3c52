package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/database"
)

const userColumns = `id, email, password_hash, full_name, COALESCE(phone,''), role, society_id, created_at, updated_at`

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Phone, &u.Role, &u.SocietyID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by ID, or models.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail returns a user by email, or models.ErrNotFound.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// Create inserts a new user. The users.email unique constraint makes
// duplicate signups fail atomically; violations map to ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, email, passwordHash, fullName, phone string, role models.Role) (*models.User, error) {
	const q = `INSERT INTO users (email, password_hash, full_name, phone, role)
		VALUES ($1, $2, $3, NULLIF($4,''), $5)
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, q, email, passwordHash, fullName, phone, string(role)))
	if err != nil {
		if database.IsUniqueViolation(err, database.ConstraintUsersEmail) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile merges profile fields and bumps updated_at.
// Returns models.ErrNotFound when the id does not exist.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName, phone string) error {
	const q = `UPDATE users SET
		full_name = COALESCE(NULLIF($1,''), full_name),
		phone = COALESCE(NULLIF($2,''), phone),
		updated_at = NOW()
		WHERE id = $3`
	tag, err := r.pool.Exec(ctx, q, fullName, phone, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetSociety assigns (or clears, with nil) the user's society.
func (r *Repository) SetSociety(ctx context.Context, id uuid.UUID, societyID *uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET society_id = $1, updated_at = NOW() WHERE id = $2`, societyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// List returns all users, admins first then by name.
func (r *Repository) List(ctx context.Context) ([]models.UserPublic, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, full_name, COALESCE(phone,''), role, society_id, created_at
		FROM users ORDER BY role, full_name, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.UserPublic
	for rows.Next() {
		var u models.UserPublic
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Role, &u.SocietyID, &u.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
