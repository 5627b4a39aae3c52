package societies

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
	"github.com/societyhub/backend/internal/properties"
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

func createAdmin(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin-%s@test.local", uuid.New().String()[:8])
	u, err := auth.NewRepository(pool).Create(context.Background(), email, "hash", "Admin", "", models.RoleAdmin)
	require.NoError(t, err)
	return u
}

func newSociety(adminID uuid.UUID) *models.Society {
	return &models.Society{
		Name:               "Test Society",
		RegistrationNumber: "REG-" + uuid.New().String()[:8],
		Address:            "1 Test Street",
		TotalUnits:         10,
		AdminID:            adminID,
	}
}

func TestCreateSocietyLinksAdmin(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	admin := createAdmin(t, pool)
	s := newSociety(admin.ID)
	require.NoError(t, repo.Create(ctx, s))
	assert.NotEqual(t, uuid.Nil, s.ID)

	got, err := auth.NewRepository(pool).GetByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SocietyID)
	assert.Equal(t, s.ID, *got.SocietyID)
}

func TestCreateDuplicateRegistrationNumber(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	admin := createAdmin(t, pool)
	first := newSociety(admin.ID)
	require.NoError(t, repo.Create(ctx, first))

	second := newSociety(admin.ID)
	second.RegistrationNumber = first.RegistrationNumber
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, models.ErrDuplicateRegistrationNumber)

	// Exactly one row survives the race.
	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM societies WHERE registration_number = $1`,
		first.RegistrationNumber).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpdateMissingSociety(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	name := "Ghost Society"
	err := repo.Update(ctx, uuid.New(), UpdateParams{Name: &name})
	assert.ErrorIs(t, err, models.ErrNotFound)

	// No row was created by the failed update.
	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM societies WHERE name = $1`, name).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestUpdateMergesFields(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	admin := createAdmin(t, pool)
	s := newSociety(admin.ID)
	require.NoError(t, repo.Create(ctx, s))

	units := 42
	require.NoError(t, repo.Update(ctx, s.ID, UpdateParams{TotalUnits: &units}))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.TotalUnits)
	assert.Equal(t, s.Name, got.Name) // untouched
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestDeleteSocietyDoesNotCascade(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	admin := createAdmin(t, pool)
	s := newSociety(admin.ID)
	require.NoError(t, repo.Create(ctx, s))

	propRepo := properties.NewRepository(pool)
	p := &models.Property{SocietyID: s.ID, UnitNumber: "A-1", Status: models.PropertyStatusVacant}
	require.NoError(t, propRepo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, s.ID))

	_, err := repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// The property outlives its society.
	survivor, err := propRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, survivor.SocietyID)

	// The admin's membership is cleared.
	got, err := auth.NewRepository(pool).GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SocietyID)
}

func TestDeleteMissingSociety(t *testing.T) {
	repo := NewRepository(testPool(t))
	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListByAdmin(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	admin := createAdmin(t, pool)
	list, err := repo.ListByAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	s := newSociety(admin.ID)
	require.NoError(t, repo.Create(ctx, s))

	list, err = repo.ListByAdmin(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, s.ID, list[0].ID)
}
