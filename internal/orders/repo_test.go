package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/repo/repotest"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/angelmondragon/voltmart-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderModel(number string, status enums.OrderStatus, offerID int64, qty int) *models.Order {
	price := decimal.NewFromInt(1000)
	return &models.Order{
		OrderNumber:     number,
		Status:          status,
		CustomerName:    "Asha",
		CustomerPhone:   "+919800000000",
		DeliveryAddress: "12 MG Road",
		Currency:        "INR",
		ItemCount:       qty,
		Subtotal:        price.Mul(decimal.NewFromInt(int64(qty))),
		TransitFee:      decimal.Zero,
		DeliveryTotal:   decimal.NewFromInt(114),
		GrandTotal:      price.Mul(decimal.NewFromInt(int64(qty))).Add(decimal.NewFromInt(114)),
		PlacedAt:        time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		LineItems: []models.OrderLineItem{{
			OfferID:     offerID,
			ProductID:   1,
			StoreID:     1,
			ProductName: "Pixel 9",
			StoreName:   "North",
			UnitPrice:   price,
			Quantity:    qty,
			LineTotal:   price.Mul(decimal.NewFromInt(int64(qty))),
		}},
		StoreFees: []models.OrderStoreFee{
			{StoreID: 2, StoreName: "South", DistanceKm: 5, DistanceSource: "default", Fee: decimal.NewFromInt(114), Position: 1},
			{StoreID: 1, StoreName: "North", DistanceKm: 0, DistanceSource: "live", Fee: decimal.NewFromInt(50), Position: 0},
		},
	}
}

func TestRepositoryCreateAndFindWithChildren(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(repotest.NewDB(t))

	order := newOrderModel("VM-1", enums.OrderStatusPlaced, 7, 2)
	require.NoError(t, repo.Create(ctx, order))
	require.NotZero(t, order.ID)

	found, err := repo.FindByNumber(ctx, "VM-1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	require.Len(t, found.LineItems, 1)
	assert.Equal(t, 2, found.LineItems[0].Quantity)
	require.Len(t, found.StoreFees, 2)
	assert.Equal(t, "North", found.StoreFees[0].StoreName)
	assert.True(t, found.GrandTotal.Equal(decimal.NewFromInt(2114)))

	byID, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "VM-1", byID.OrderNumber)

	_, err = repo.FindByNumber(ctx, "missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(repotest.NewDB(t))

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, newOrderModel(fmt.Sprintf("VM-%d", i), enums.OrderStatusPlaced, 1, 1)))
	}
	require.NoError(t, repo.Create(ctx, newOrderModel("VM-4", enums.OrderStatusCanceled, 1, 1)))

	first, err := repo.List(ctx, pagination.Params{Limit: 2}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	assert.Equal(t, "VM-4", first.Orders[0].OrderNumber)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.List(ctx, pagination.Params{Limit: 2, Cursor: first.NextCursor}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, second.Orders, 2)
	assert.Equal(t, "VM-1", second.Orders[1].OrderNumber)
	assert.Empty(t, second.NextCursor)

	placed := enums.OrderStatusPlaced
	filtered, err := repo.List(ctx, pagination.Params{}, ListFilters{Status: &placed})
	require.NoError(t, err)
	assert.Len(t, filtered.Orders, 3)
}

func TestRepositoryUpdateStatusWithTx(t *testing.T) {
	ctx := context.Background()
	conn := repotest.NewDB(t)
	repo := NewRepository(conn)

	order := newOrderModel("VM-9", enums.OrderStatusPlaced, 1, 1)
	require.NoError(t, repo.Create(ctx, order))

	err := conn.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		locked, err := txRepo.FindForUpdate(ctx, order.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, enums.OrderStatusPlaced, locked.Status)
		return txRepo.UpdateStatus(ctx, order.ID, map[string]any{"status": enums.OrderStatusConfirmed})
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, reloaded.Status)

	err = repo.UpdateStatus(ctx, 999, map[string]any{"status": enums.OrderStatusConfirmed})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
