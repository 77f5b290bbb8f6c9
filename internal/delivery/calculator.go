package delivery

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/voltmart-backend/pkg/geo"
)

// Calculator turns cart line items into a delivery breakdown. It performs no
// I/O and holds no mutable state, so one instance is shared process-wide.
type Calculator struct {
	pricing    Pricing
	strategies []DistanceStrategy
	transit    TransitFeePolicy
}

// Option configures optional calculator behavior.
type Option func(*Calculator)

// WithStrategies replaces the distance resolution chain.
func WithStrategies(strategies ...DistanceStrategy) Option {
	return func(c *Calculator) {
		if len(strategies) > 0 {
			c.strategies = strategies
		}
	}
}

// WithTransitFeePolicy overrides the transit fee policy.
func WithTransitFeePolicy(policy TransitFeePolicy) Option {
	return func(c *Calculator) {
		if policy != nil {
			c.transit = policy
		}
	}
}

// NewCalculator builds a calculator for the given pricing.
func NewCalculator(pricing Pricing, opts ...Option) *Calculator {
	c := &Calculator{
		pricing:    pricing,
		strategies: DefaultStrategies(pricing.DefaultDistanceKm),
		transit:    NoTransitFee{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Pricing returns the pricing the calculator was built with.
func (c *Calculator) Pricing() Pricing {
	return c.pricing
}

// ComputeBreakdown groups items by store, resolves each store's distance and
// prices one fee line per store. Stores missing from stores fall through to
// the default distance. An empty or all-zero-quantity cart yields a zero breakdown.
func (c *Calculator) ComputeBreakdown(items []LineItem, user *geo.Point, stores map[int64]StoreLocation) Breakdown {
	fees := make([]StoreFee, 0)
	seen := make(map[int64]struct{})

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if _, ok := seen[item.StoreID]; ok {
			continue
		}
		seen[item.StoreID] = struct{}{}

		var loc *StoreLocation
		if found, ok := stores[item.StoreID]; ok {
			loc = &found
		}

		km, source, rejected := c.resolveDistance(user, loc)
		fees = append(fees, StoreFee{
			StoreID:         item.StoreID,
			StoreName:       item.StoreName,
			DistanceKm:      km,
			DistanceSource:  source,
			Fee:             c.pricing.FeeFor(km),
			RejectedSources: rejected,
		})
	}

	transit := c.transit.TransitFee(fees)
	total := transit
	for _, fee := range fees {
		total = total.Add(fee.Fee)
	}

	return Breakdown{
		PerStoreFees:  fees,
		TransitFee:    transit,
		TotalDelivery: total,
	}
}

// resolveDistance walks the strategy chain. Non-finite results are skipped
// and collected in rejected; if nothing usable remains the pricing default
// applies, or 0 km when that is not finite either.
func (c *Calculator) resolveDistance(user *geo.Point, loc *StoreLocation) (km float64, source DistanceSource, rejected []DistanceSource) {
	for _, strategy := range c.strategies {
		d, ok := strategy.Resolve(user, loc)
		if !ok {
			continue
		}
		if !finite(d) {
			rejected = append(rejected, strategy.Source())
			continue
		}
		return d, strategy.Source(), rejected
	}
	if finite(c.pricing.DefaultDistanceKm) {
		return c.pricing.DefaultDistanceKm, DistanceSourceDefault, rejected
	}
	return 0, DistanceSourceDefault, rejected
}

// Subtotal sums unit price × quantity over items with a positive quantity.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// GrandTotal is the checkout total: item subtotal plus total delivery.
func GrandTotal(items []LineItem, breakdown Breakdown) decimal.Decimal {
	return Subtotal(items).Add(breakdown.TotalDelivery)
}
