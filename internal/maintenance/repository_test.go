package maintenance

import (
	"context"
	"os"
	"testing"

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

func newRequest(t *testing.T, repo *Repository) *models.MaintenanceRequest {
	t.Helper()
	m := &models.MaintenanceRequest{
		SocietyID:  uuid.New(),
		PropertyID: uuid.New(),
		TenantID:   uuid.New(),
		Title:      "Broken light in stairwell",
		Priority:   models.MaintenancePriorityMedium,
		Status:     models.MaintenanceStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func TestCompletedStampsCompletedAt(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()
	m := newRequest(t, repo)
	assert.Nil(t, m.CompletedAt)

	require.NoError(t, repo.SetStatus(ctx, m.ID, models.MaintenanceStatusInProgress))
	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusInProgress, got.Status)
	assert.Nil(t, got.CompletedAt)

	require.NoError(t, repo.SetStatus(ctx, m.ID, models.MaintenanceStatusCompleted))
	got, err = repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestAssignRequest(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()
	m := newRequest(t, repo)
	assignee := uuid.New()

	require.NoError(t, repo.Assign(ctx, m.ID, assignee))
	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, assignee, *got.AssigneeID)
}

func TestListFilters(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()
	m := newRequest(t, repo)

	bySociety, err := repo.ListBySociety(ctx, m.SocietyID, "")
	require.NoError(t, err)
	require.Len(t, bySociety, 1)

	byStatus, err := repo.ListBySociety(ctx, m.SocietyID, models.MaintenanceStatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, byStatus)

	byTenant, err := repo.ListByTenant(ctx, m.TenantID)
	require.NoError(t, err)
	require.Len(t, byTenant, 1)
	assert.Equal(t, m.ID, byTenant[0].ID)

	byProperty, err := repo.ListByProperty(ctx, m.PropertyID)
	require.NoError(t, err)
	require.Len(t, byProperty, 1)
}

func TestSetStatusMissingRequest(t *testing.T) {
	repo := NewRepository(testPool(t))
	err := repo.SetStatus(context.Background(), uuid.New(), models.MaintenanceStatusCompleted)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
