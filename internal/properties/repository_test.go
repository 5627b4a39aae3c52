package properties

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/societyhub/backend/internal/auth"
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

func createTenant(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	email := fmt.Sprintf("tenant-%s@test.local", uuid.New().String()[:8])
	u, err := auth.NewRepository(pool).Create(context.Background(), email, "hash", "Tenant", "", models.RoleTenant)
	require.NoError(t, err)
	return u
}

func TestCreateAndGetProperty(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	p := &models.Property{
		SocietyID:  uuid.New(),
		UnitNumber: "B-204",
		Type:       "apartment",
		Bedrooms:   2,
		Bathrooms:  1,
		AreaSqft:   880,
		RentCents:  1800000,
		Status:     models.PropertyStatusVacant,
	}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEqual(t, uuid.Nil, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "B-204", got.UnitNumber)
	assert.Equal(t, int64(1800000), got.RentCents)
	assert.Nil(t, got.TenantID)
}

func TestListBySocietyExactSet(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	societyID := uuid.New()
	want := map[uuid.UUID]bool{}
	for i := 0; i < 3; i++ {
		p := &models.Property{SocietyID: societyID, UnitNumber: fmt.Sprintf("C-%d", i), Status: models.PropertyStatusVacant}
		require.NoError(t, repo.Create(ctx, p))
		want[p.ID] = true
	}

	list, err := repo.ListBySociety(ctx, societyID, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, p := range list {
		assert.True(t, want[p.ID])
	}

	// Unknown society is an empty list, not an error.
	empty, err := repo.ListBySociety(ctx, uuid.New(), "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListBySocietyStatusFilter(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	societyID := uuid.New()
	vacant := &models.Property{SocietyID: societyID, UnitNumber: "V-1", Status: models.PropertyStatusVacant}
	require.NoError(t, repo.Create(ctx, vacant))
	maint := &models.Property{SocietyID: societyID, UnitNumber: "M-1", Status: models.PropertyStatusMaintenance}
	require.NoError(t, repo.Create(ctx, maint))

	list, err := repo.ListBySociety(ctx, societyID, models.PropertyStatusMaintenance)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, maint.ID, list[0].ID)
}

func TestAssignAndUnassignTenant(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	societyID := uuid.New()
	tenant := createTenant(t, pool)
	p := &models.Property{SocietyID: societyID, UnitNumber: "D-1", Status: models.PropertyStatusVacant}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.AssignTenant(ctx, p.ID, tenant.ID, societyID))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusOccupied, got.Status)
	require.NotNil(t, got.TenantID)
	assert.Equal(t, tenant.ID, *got.TenantID)

	user, err := auth.NewRepository(pool).GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	require.NotNil(t, user.SocietyID)
	assert.Equal(t, societyID, *user.SocietyID)

	mine, err := repo.GetByTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, mine.ID)

	require.NoError(t, repo.UnassignTenant(ctx, p.ID))

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusVacant, got.Status)
	assert.Nil(t, got.TenantID)

	user, err = auth.NewRepository(pool).GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Nil(t, user.SocietyID)
}

func TestUnassignVacantProperty(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	p := &models.Property{SocietyID: uuid.New(), UnitNumber: "E-1", Status: models.PropertyStatusVacant}
	require.NoError(t, repo.Create(ctx, p))

	// Unassigning with no tenant is a no-op, not an error.
	require.NoError(t, repo.UnassignTenant(ctx, p.ID))
}

func TestUpdateMissingProperty(t *testing.T) {
	repo := NewRepository(testPool(t))
	unit := "Z-9"
	err := repo.Update(context.Background(), uuid.New(), UpdateParams{UnitNumber: &unit})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteProperty(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	p := &models.Property{SocietyID: uuid.New(), UnitNumber: "F-1", Status: models.PropertyStatusVacant}
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), models.ErrNotFound)
}
