package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineItem captures the snapshot of each offer within an order.
type OrderLineItem struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"column:order_id;not null;index"`
	OfferID     int64           `gorm:"column:offer_id;not null"`
	ProductID   int64           `gorm:"column:product_id;not null;index"`
	StoreID     int64           `gorm:"column:store_id;not null;index"`
	ProductName string          `gorm:"column:product_name;not null"`
	StoreName   string          `gorm:"column:store_name;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
