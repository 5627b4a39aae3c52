package documents

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/societyhub/backend/internal/models"
)

const documentColumns = `id, owner_id, society_id, name, COALESCE(content_type,''), size_bytes, COALESCE(s3_key,''), created_at, updated_at`

// Repository handles document metadata persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a documents repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var d models.Document
	err := row.Scan(&d.ID, &d.OwnerID, &d.SocietyID, &d.Name, &d.ContentType, &d.SizeBytes, &d.S3Key, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Create inserts document metadata.
func (r *Repository) Create(ctx context.Context, d *models.Document) error {
	const q = `INSERT INTO documents (owner_id, society_id, name, content_type, size_bytes, s3_key)
		VALUES ($1, $2, $3, NULLIF($4,''), $5, NULLIF($6,''))
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, d.OwnerID, d.SocietyID, d.Name, d.ContentType, d.SizeBytes, d.S3Key).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// GetByID returns a document by ID, or models.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return scanDocument(r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
}

// SetS3Key records the object key once the upload has succeeded.
func (r *Repository) SetS3Key(ctx context.Context, id uuid.UUID, key string, size int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE documents SET s3_key = $1, size_bytes = $2, updated_at = NOW() WHERE id = $3`, key, size, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListByOwner returns a user's documents, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Document, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+documentColumns+` FROM documents WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.SocietyID, &d.Name, &d.ContentType, &d.SizeBytes, &d.S3Key, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete removes document metadata.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
