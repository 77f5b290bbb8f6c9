package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/analytics/query"
	"github.com/angelmondragon/voltmart-backend/internal/analytics/types"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type summaryQueries interface {
	Totals(ctx context.Context, r types.Range) (types.Totals, error)
	StatusCounts(ctx context.Context, r types.Range) (map[string]int64, error)
	TopProducts(ctx context.Context, r types.Range, limit int) ([]types.ProductRevenue, error)
	RevenueByStore(ctx context.Context, r types.Range) ([]types.StoreRevenue, error)
	OrderPoints(ctx context.Context, r types.Range) ([]types.OrderPoint, error)
}

// Service provides the admin dashboard report.
type Service interface {
	// Summary returns KPIs for the requested range.
	Summary(ctx context.Context, input RangeInput) (*types.Summary, error)
}

type service struct {
	queries  summaryQueries
	currency string
	now      func() time.Time
}

// NewService builds the analytics service over the SQL aggregates.
func NewService(queries summaryQueries, currency string) (Service, error) {
	if queries == nil {
		return nil, fmt.Errorf("analytics queries required")
	}
	if strings.TrimSpace(currency) == "" {
		currency = string(enums.CurrencyINR)
	}
	return &service{queries: queries, currency: currency, now: time.Now}, nil
}

func (s *service) Summary(ctx context.Context, input RangeInput) (*types.Summary, error) {
	r, err := ResolveRange(input, s.now())
	if err != nil {
		return nil, err
	}

	totals, err := s.queries.Totals(ctx, r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load totals")
	}
	statuses, err := s.queries.StatusCounts(ctx, r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load status counts")
	}
	top, err := s.queries.TopProducts(ctx, r, query.TopProductsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load top products")
	}
	byStore, err := s.queries.RevenueByStore(ctx, r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store revenue")
	}
	points, err := s.queries.OrderPoints(ctx, r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load daily revenue")
	}

	byStatus := make(map[string]int64, len(enums.OrderStatuses()))
	for _, status := range enums.OrderStatuses() {
		byStatus[string(status)] = statuses[string(status)]
	}

	aov := decimal.Zero
	if totals.OrderCount > 0 {
		aov = totals.GrossRevenue.Div(decimal.NewFromInt(totals.OrderCount)).Round(2)
	}

	return &types.Summary{
		Range:             r,
		Currency:          s.currency,
		OrderCount:        totals.OrderCount,
		GrossRevenue:      totals.GrossRevenue,
		ItemsSubtotal:     totals.ItemsSubtotal,
		DeliveryFees:      totals.DeliveryFees,
		AverageOrderValue: aov,
		UnitsSold:         totals.UnitsSold,
		TopProducts:       top,
		RevenueByStore:    byStore,
		DailyRevenue:      DailySeries(r, points),
		OrdersByStatus:    byStatus,
	}, nil
}
