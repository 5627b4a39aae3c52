package notices

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/societyhub/backend/internal/models"
)

const noticeColumns = `id, society_id, title, content, type, COALESCE(priority,''), is_important,
	valid_from, valid_until, created_by, created_at, updated_at`

// Repository handles notice and comment persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notices repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanNotice(row pgx.Row) (*models.Notice, error) {
	var n models.Notice
	err := row.Scan(&n.ID, &n.SocietyID, &n.Title, &n.Content, &n.Type, &n.Priority, &n.IsImportant,
		&n.ValidFrom, &n.ValidUntil, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// Create inserts a notice.
func (r *Repository) Create(ctx context.Context, n *models.Notice) error {
	const q = `INSERT INTO notices (society_id, title, content, type, priority, is_important, valid_from, valid_until, created_by)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, n.SocietyID, n.Title, n.Content, n.Type, n.Priority, n.IsImportant,
		n.ValidFrom, n.ValidUntil, n.CreatedBy).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// GetByID returns a notice by ID, or models.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error) {
	return scanNotice(r.pool.QueryRow(ctx, `SELECT `+noticeColumns+` FROM notices WHERE id = $1`, id))
}

// ListBySociety returns notices for a society, newest first. With
// activeOnly, notices outside their validity window are excluded.
func (r *Repository) ListBySociety(ctx context.Context, societyID uuid.UUID, activeOnly bool) ([]models.Notice, error) {
	q := `SELECT ` + noticeColumns + ` FROM notices WHERE society_id = $1`
	if activeOnly {
		q += ` AND (valid_from IS NULL OR valid_from <= NOW()) AND (valid_until IS NULL OR valid_until >= NOW())`
	}
	rows, err := r.pool.Query(ctx, q+` ORDER BY is_important DESC, created_at DESC`, societyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Notice
	for rows.Next() {
		var n models.Notice
		if err := rows.Scan(&n.ID, &n.SocietyID, &n.Title, &n.Content, &n.Type, &n.Priority, &n.IsImportant,
			&n.ValidFrom, &n.ValidUntil, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// UpdateParams holds the partial fields accepted by Update.
type UpdateParams struct {
	Title       *string
	Content     *string
	Type        *string
	Priority    *string
	IsImportant *bool
}

// Update merges fields and bumps updated_at; models.ErrNotFound for a
// missing id.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) error {
	const q = `UPDATE notices SET
		title = COALESCE($1, title),
		content = COALESCE($2, content),
		type = COALESCE($3, type),
		priority = COALESCE($4, priority),
		is_important = COALESCE($5, is_important),
		updated_at = NOW()
		WHERE id = $6`
	tag, err := r.pool.Exec(ctx, q, p.Title, p.Content, p.Type, p.Priority, p.IsImportant, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a notice; its comments go with it.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CreateComment adds a comment to a notice.
func (r *Repository) CreateComment(ctx context.Context, cm *models.NoticeComment) error {
	const q = `INSERT INTO notice_comments (notice_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, cm.NoticeID, cm.AuthorID, cm.Content).Scan(&cm.ID, &cm.CreatedAt)
}

// ListComments returns comments for a notice, oldest first.
func (r *Repository) ListComments(ctx context.Context, noticeID uuid.UUID) ([]models.NoticeComment, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, notice_id, author_id, content, created_at
		FROM notice_comments WHERE notice_id = $1 ORDER BY created_at ASC`, noticeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.NoticeComment
	for rows.Next() {
		var cm models.NoticeComment
		if err := rows.Scan(&cm.ID, &cm.NoticeID, &cm.AuthorID, &cm.Content, &cm.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, cm)
	}
	return list, rows.Err()
}
