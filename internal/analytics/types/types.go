package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Preset names a rolling window ending now.
type Preset string

const (
	Preset7Days  Preset = "7d"
	Preset30Days Preset = "30d"
	Preset90Days Preset = "90d"
	PresetCustom Preset = "custom"
)

// Range is a half-open [From, To) window in UTC.
type Range struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Preset Preset    `json:"preset"`
}

// Totals aggregates non-canceled orders in a range.
type Totals struct {
	OrderCount    int64
	GrossRevenue  decimal.Decimal
	ItemsSubtotal decimal.Decimal
	DeliveryFees  decimal.Decimal
	UnitsSold     int64
}

// ProductRevenue is one entry of the top products table.
type ProductRevenue struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// StoreRevenue splits revenue by fulfilling store.
type StoreRevenue struct {
	StoreID      int64           `json:"store_id"`
	StoreName    string          `json:"store_name"`
	ItemsRevenue decimal.Decimal `json:"items_revenue"`
	DeliveryFees decimal.Decimal `json:"delivery_fees"`
}

// OrderPoint is a single order's contribution to the daily series.
type OrderPoint struct {
	PlacedAt   time.Time
	GrandTotal decimal.Decimal
}

// DailyPoint is one UTC day of the revenue series.
type DailyPoint struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Summary is the admin dashboard payload.
type Summary struct {
	Range             Range            `json:"range"`
	Currency          string           `json:"currency"`
	OrderCount        int64            `json:"order_count"`
	GrossRevenue      decimal.Decimal  `json:"gross_revenue"`
	ItemsSubtotal     decimal.Decimal  `json:"items_subtotal"`
	DeliveryFees      decimal.Decimal  `json:"delivery_fees"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	UnitsSold         int64            `json:"units_sold"`
	TopProducts       []ProductRevenue `json:"top_products"`
	RevenueByStore    []StoreRevenue   `json:"revenue_by_store"`
	DailyRevenue      []DailyPoint     `json:"daily_revenue"`
	OrdersByStatus    map[string]int64 `json:"orders_by_status"`
}
