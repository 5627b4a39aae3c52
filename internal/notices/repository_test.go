package notices

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/database"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func TestActiveOnlyFiltersExpiredNotices(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()
	societyID := uuid.New()
	author := uuid.New()

	past := time.Now().Add(-48 * time.Hour)
	expiredUntil := time.Now().Add(-24 * time.Hour)
	expired := &models.Notice{
		SocietyID: societyID, Title: "Old", Content: "expired",
		Type: models.NoticeTypeGeneral, ValidFrom: &past, ValidUntil: &expiredUntil, CreatedBy: author,
	}
	require.NoError(t, repo.Create(ctx, expired))

	current := &models.Notice{
		SocietyID: societyID, Title: "Current", Content: "active",
		Type: models.NoticeTypeGeneral, CreatedBy: author,
	}
	require.NoError(t, repo.Create(ctx, current))

	active, err := repo.ListBySociety(ctx, societyID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, current.ID, active[0].ID)

	all, err := repo.ListBySociety(ctx, societyID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportantNoticesSortFirst(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()
	societyID := uuid.New()
	author := uuid.New()

	plain := &models.Notice{SocietyID: societyID, Title: "Plain", Content: "x", Type: models.NoticeTypeGeneral, CreatedBy: author}
	require.NoError(t, repo.Create(ctx, plain))
	important := &models.Notice{SocietyID: societyID, Title: "Important", Content: "x", Type: models.NoticeTypeEmergency, IsImportant: true, CreatedBy: author}
	require.NoError(t, repo.Create(ctx, important))

	list, err := repo.ListBySociety(ctx, societyID, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, important.ID, list[0].ID)
}

func TestCommentsFollowNotice(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	n := &models.Notice{SocietyID: uuid.New(), Title: "N", Content: "x", Type: models.NoticeTypeGeneral, CreatedBy: uuid.New()}
	require.NoError(t, repo.Create(ctx, n))

	cm := &models.NoticeComment{NoticeID: n.ID, AuthorID: uuid.New(), Content: "noted"}
	require.NoError(t, repo.CreateComment(ctx, cm))

	comments, err := repo.ListComments(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "noted", comments[0].Content)

	// Deleting the notice removes its comments.
	require.NoError(t, repo.Delete(ctx, n.ID))
	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM notice_comments WHERE notice_id = $1`, n.ID).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestUpdateMissingNotice(t *testing.T) {
	repo := NewRepository(testPool(t))
	title := "nope"
	err := repo.Update(context.Background(), uuid.New(), UpdateParams{Title: &title})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
