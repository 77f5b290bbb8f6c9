package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStoreFee records the delivery fee charged for one store of an order.
type OrderStoreFee struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID        int64           `gorm:"column:order_id;not null;index"`
	StoreID        int64           `gorm:"column:store_id;not null"`
	StoreName      string          `gorm:"column:store_name;not null"`
	DistanceKm     float64         `gorm:"column:distance_km;not null"`
	DistanceSource string          `gorm:"column:distance_source;type:text;not null"`
	Fee            decimal.Decimal `gorm:"column:fee;type:numeric(12,2);not null"`
	Position       int             `gorm:"column:position;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
