package payments

import (
	"context"
	"os"
	"strings"
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

func newPendingPayment(t *testing.T, repo *Repository) *models.Payment {
	t.Helper()
	p := &models.Payment{
		SocietyID:   uuid.New(),
		PropertyID:  uuid.New(),
		TenantID:    uuid.New(),
		AmountCents: 2500000,
		Currency:    "INR",
		Type:        models.PaymentTypeRent,
		Status:      models.PaymentStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCreatePayment(t *testing.T) {
	repo := NewRepository(testPool(t))
	p := newPendingPayment(t, repo)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Nil(t, p.PaidAt)

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, got.Status)
	assert.Equal(t, int64(2500000), got.AmountCents)
}

func TestTransitionToCompletedIssuesReceipt(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()
	p := newPendingPayment(t, repo)
	admin := uuid.New()

	got, err := repo.Transition(ctx, p.ID, TransitionParams{
		ToStatus:      models.PaymentStatusCompleted,
		ChangedBy:     admin,
		Note:          "paid in full",
		Method:        "upi",
		TransactionID: "TXN-123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, got.Status)
	assert.Equal(t, "upi", got.Method)
	assert.Equal(t, "TXN-123", got.TransactionID)
	require.NotNil(t, got.PaidAt)

	history, err := repo.ListHistory(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.PaymentStatusPending, history[0].FromStatus)
	assert.Equal(t, models.PaymentStatusCompleted, history[0].ToStatus)
	assert.Equal(t, admin, history[0].ChangedBy)
	assert.Equal(t, "paid in full", history[0].Note)

	receipt, err := repo.GetReceipt(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, receipt.PaymentID)
	assert.Equal(t, int64(2500000), receipt.AmountCents)
	assert.True(t, strings.HasPrefix(receipt.ReceiptNumber, "RCP-"))
}

func TestTransitionToFailedHasNoReceipt(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()
	p := newPendingPayment(t, repo)

	got, err := repo.Transition(ctx, p.ID, TransitionParams{
		ToStatus:  models.PaymentStatusFailed,
		ChangedBy: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, got.Status)
	assert.Nil(t, got.PaidAt)

	_, err = repo.GetReceipt(ctx, p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTransitionMissingPayment(t *testing.T) {
	repo := NewRepository(testPool(t))
	_, err := repo.Transition(context.Background(), uuid.New(), TransitionParams{
		ToStatus:  models.PaymentStatusCompleted,
		ChangedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemindersRoundTrip(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()
	p := newPendingPayment(t, repo)
	admin := uuid.New()

	rem := &models.PaymentReminder{PaymentID: p.ID, RequestedBy: admin, Message: "rent due"}
	require.NoError(t, repo.RecordReminder(ctx, rem))
	assert.NotEqual(t, uuid.Nil, rem.ID)
	assert.False(t, rem.SentAt.IsZero())

	list, err := repo.ListReminders(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, admin, list[0].RequestedBy)
	assert.Equal(t, "rent due", list[0].Message)
}

func TestListByTenantAndSociety(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()
	p := newPendingPayment(t, repo)

	byTenant, err := repo.ListByTenant(ctx, p.TenantID)
	require.NoError(t, err)
	require.Len(t, byTenant, 1)
	assert.Equal(t, p.ID, byTenant[0].ID)

	bySociety, err := repo.ListBySociety(ctx, p.SocietyID, models.PaymentStatusPending)
	require.NoError(t, err)
	require.Len(t, bySociety, 1)

	none, err := repo.ListBySociety(ctx, p.SocietyID, models.PaymentStatusRefunded)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeletePaymentCascadesHistory(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()
	p := newPendingPayment(t, repo)

	_, err := repo.Transition(ctx, p.ID, TransitionParams{ToStatus: models.PaymentStatusCompleted, ChangedBy: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, p.ID))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM payment_history WHERE payment_id = $1`, p.ID).Scan(&count))
	assert.Equal(t, 0, count)
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM payment_receipts WHERE payment_id = $1`, p.ID).Scan(&count))
	assert.Equal(t, 0, count)
}
