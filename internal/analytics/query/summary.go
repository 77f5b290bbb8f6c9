// Package query runs the dashboard aggregates against the orders tables.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/angelmondragon/voltmart-backend/internal/analytics/types"
	"github.com/angelmondragon/voltmart-backend/internal/repo"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TopProductsLimit caps the top products table.
const TopProductsLimit = 5

const canceled = string(enums.OrderStatusCanceled)

const (
	totalsSQL = `
SELECT
  COUNT(*) AS order_count,
  COALESCE(SUM(grand_total), 0) AS gross_revenue,
  COALESCE(SUM(subtotal), 0) AS items_subtotal,
  COALESCE(SUM(delivery_total), 0) AS delivery_fees,
  COALESCE(SUM(item_count), 0) AS units_sold
FROM orders
WHERE placed_at >= ? AND placed_at < ?
  AND status <> ?
`

	statusCountsSQL = `
SELECT status, COUNT(*) AS value
FROM orders
WHERE placed_at >= ? AND placed_at < ?
GROUP BY status
`

	topProductsSQL = `
SELECT
  li.product_id,
  MAX(li.product_name) AS product_name,
  COALESCE(SUM(li.quantity), 0) AS units_sold,
  COALESCE(SUM(li.line_total), 0) AS revenue
FROM order_line_items li
JOIN orders o ON o.id = li.order_id
WHERE o.placed_at >= ? AND o.placed_at < ?
  AND o.status <> ?
GROUP BY li.product_id
ORDER BY revenue DESC, li.product_id ASC
LIMIT ?
`

	storeItemsSQL = `
SELECT
  li.store_id,
  MAX(li.store_name) AS store_name,
  COALESCE(SUM(li.line_total), 0) AS revenue
FROM order_line_items li
JOIN orders o ON o.id = li.order_id
WHERE o.placed_at >= ? AND o.placed_at < ?
  AND o.status <> ?
GROUP BY li.store_id
`

	storeFeesSQL = `
SELECT
  f.store_id,
  MAX(f.store_name) AS store_name,
  COALESCE(SUM(f.fee), 0) AS revenue
FROM order_store_fees f
JOIN orders o ON o.id = f.order_id
WHERE o.placed_at >= ? AND o.placed_at < ?
  AND o.status <> ?
GROUP BY f.store_id
`

	orderPointsSQL = `
SELECT placed_at, grand_total
FROM orders
WHERE placed_at >= ? AND placed_at < ?
  AND status <> ?
ORDER BY placed_at ASC
`
)

// Repository reads dashboard aggregates. Canceled orders never count toward revenue.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to the analytics queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

type totalsRow struct {
	OrderCount    int64
	GrossRevenue  decimal.Decimal
	ItemsSubtotal decimal.Decimal
	DeliveryFees  decimal.Decimal
	UnitsSold     int64
}

// Totals sums non-canceled orders placed in r.
func (q *Repository) Totals(ctx context.Context, r types.Range) (types.Totals, error) {
	var row totalsRow
	if err := q.DB(ctx).Raw(totalsSQL, r.From, r.To, canceled).Scan(&row).Error; err != nil {
		return types.Totals{}, fmt.Errorf("query totals: %w", err)
	}
	return types.Totals(row), nil
}

type labelValueRow struct {
	Status string
	Value  int64
}

// StatusCounts counts every order placed in r by status.
func (q *Repository) StatusCounts(ctx context.Context, r types.Range) (map[string]int64, error) {
	var rows []labelValueRow
	if err := q.DB(ctx).Raw(statusCountsSQL, r.From, r.To).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query status counts: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Value
	}
	return out, nil
}

// TopProducts ranks products by line revenue.
func (q *Repository) TopProducts(ctx context.Context, r types.Range, limit int) ([]types.ProductRevenue, error) {
	if limit <= 0 {
		limit = TopProductsLimit
	}
	var rows []types.ProductRevenue
	if err := q.DB(ctx).Raw(topProductsSQL, r.From, r.To, canceled, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}
	if rows == nil {
		rows = []types.ProductRevenue{}
	}
	return rows, nil
}

type storeRow struct {
	StoreID   int64
	StoreName sql.NullString
	Revenue   decimal.Decimal
}

// RevenueByStore merges item revenue and delivery fees per store, highest item revenue first.
func (q *Repository) RevenueByStore(ctx context.Context, r types.Range) ([]types.StoreRevenue, error) {
	var items, fees []storeRow
	if err := q.DB(ctx).Raw(storeItemsSQL, r.From, r.To, canceled).Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("query store revenue: %w", err)
	}
	if err := q.DB(ctx).Raw(storeFeesSQL, r.From, r.To, canceled).Scan(&fees).Error; err != nil {
		return nil, fmt.Errorf("query store fees: %w", err)
	}

	byStore := make(map[int64]*types.StoreRevenue)
	get := func(row storeRow) *types.StoreRevenue {
		entry, ok := byStore[row.StoreID]
		if !ok {
			entry = &types.StoreRevenue{StoreID: row.StoreID, ItemsRevenue: decimal.Zero, DeliveryFees: decimal.Zero}
			byStore[row.StoreID] = entry
		}
		if entry.StoreName == "" && row.StoreName.Valid {
			entry.StoreName = row.StoreName.String
		}
		return entry
	}
	for _, row := range items {
		get(row).ItemsRevenue = row.Revenue
	}
	for _, row := range fees {
		get(row).DeliveryFees = row.Revenue
	}

	out := make([]types.StoreRevenue, 0, len(byStore))
	for _, entry := range byStore {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].ItemsRevenue.Cmp(out[j].ItemsRevenue); cmp != 0 {
			return cmp > 0
		}
		return out[i].StoreID < out[j].StoreID
	})
	return out, nil
}

// OrderPoints returns each non-canceled order's timestamp and total for bucketing.
func (q *Repository) OrderPoints(ctx context.Context, r types.Range) ([]types.OrderPoint, error) {
	var rows []types.OrderPoint
	if err := q.DB(ctx).Raw(orderPointsSQL, r.From, r.To, canceled).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query order points: %w", err)
	}
	return rows, nil
}
