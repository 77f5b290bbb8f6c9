package models

import (
	"time"

	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is a placed checkout. Money columns are snapshots taken at checkout
// time and never recomputed.
type Order struct {
	ID              int64             `gorm:"column:id;primaryKey;autoIncrement"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;index"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	CustomerPhone   string            `gorm:"column:customer_phone;not null"`
	CustomerEmail   *string           `gorm:"column:customer_email"`
	DeliveryAddress string            `gorm:"column:delivery_address;not null"`
	DeliveryLat     *float64          `gorm:"column:delivery_lat"`
	DeliveryLng     *float64          `gorm:"column:delivery_lng"`
	Currency        string            `gorm:"column:currency;not null"`
	ItemCount       int               `gorm:"column:item_count;not null"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	TransitFee      decimal.Decimal   `gorm:"column:transit_fee;type:numeric(12,2);not null"`
	DeliveryTotal   decimal.Decimal   `gorm:"column:delivery_total;type:numeric(12,2);not null"`
	GrandTotal      decimal.Decimal   `gorm:"column:grand_total;type:numeric(12,2);not null"`
	PlacedAt        time.Time         `gorm:"column:placed_at;not null;index"`
	CanceledAt      *time.Time        `gorm:"column:canceled_at"`
	DeliveredAt     *time.Time        `gorm:"column:delivered_at"`
	LineItems       []OrderLineItem   `gorm:"foreignKey:OrderID"`
	StoreFees       []OrderStoreFee   `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
