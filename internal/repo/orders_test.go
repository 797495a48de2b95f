package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/becca-afk/first-class-perfume/internal/models"
	pkgdb "github.com/becca-afk/first-class-perfume/pkg/db"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := pkgdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	r := &GormRepo{DB: db}
	require.NoError(t, r.Migrate())
	return r
}

func TestRandomOrderID_Range(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		id := randomOrderID()
		require.GreaterOrEqual(t, id, uint(100000))
		require.LessOrEqual(t, id, uint(999999))
	}
}

func TestCreateOrder_AvoidsExistingIDs(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	existing := make(map[uint]bool)
	for i := 0; i < 20; i++ {
		order, err := r.CreateOrder(ctx, &models.Order{
			CustomerName:  "Guest",
			PaymentMethod: "M-Pesa",
			Total:         100,
		})
		require.NoError(t, err)
		require.False(t, existing[order.ID])
		existing[order.ID] = true
	}
}

func TestCreateOrder_ForcesPendingStatus(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	order, err := r.CreateOrder(context.Background(), &models.Order{
		CustomerName:  "Guest",
		PaymentMethod: "M-Pesa",
		Total:         100,
		Status:        models.OrderStatusDelivered,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	_, err := r.UpdateOrder(context.Background(), 123456, map[string]any{"status": models.OrderStatusShipped})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderByCheckoutRequest(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	order, err := r.CreateOrder(ctx, &models.Order{
		CustomerName:  "Guest",
		PaymentMethod: "M-Pesa",
		Total:         100,
	})
	require.NoError(t, err)

	_, err = r.UpdateOrder(ctx, order.ID, map[string]any{"checkout_request_id": "ws_CO_7"})
	require.NoError(t, err)

	found, err := r.OrderByCheckoutRequest(ctx, "ws_CO_7")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = r.OrderByCheckoutRequest(ctx, "ws_CO_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
