package orders

import (
	"context"

	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/angelmondragon/voltmart-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders and their snapshots.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindByNumber(ctx context.Context, number string) (*models.Order, error)
	FindForUpdate(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	UpdateStatus(ctx context.Context, id int64, updates map[string]any) error
}

// ListFilters narrows the admin order listing.
type ListFilters struct {
	Status *enums.OrderStatus
}
