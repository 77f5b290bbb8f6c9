package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a store's listing of a product: its price and available stock.
type Offer struct {
	ID                 int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID          int64           `gorm:"column:product_id;not null;index;uniqueIndex:idx_offers_product_store"`
	StoreID            int64           `gorm:"column:store_id;not null;index;uniqueIndex:idx_offers_product_store"`
	Price              decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Stock              int             `gorm:"column:stock;not null;default:0"`
	DeliveryETAMinutes *int            `gorm:"column:delivery_eta_minutes"`
	IsActive           bool            `gorm:"column:is_active;not null"`
	Product            *Product        `gorm:"foreignKey:ProductID"`
	Store              *Store          `gorm:"foreignKey:StoreID"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
