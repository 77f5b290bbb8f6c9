package delivery

import (
	"math"

	"github.com/shopspring/decimal"
)

// LineItem is one offer plus a quantity as seen by the fee calculator.
type LineItem struct {
	OfferID   int64           `json:"offer_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	StoreID   int64           `json:"store_id"`
	StoreName string          `json:"store_name"`
}

// StoreLocation is the reference data the catalog supplies for a store.
// Lat/Lng are nil when the store has no known coordinates.
type StoreLocation struct {
	StoreID            int64    `json:"store_id"`
	Lat                *float64 `json:"lat,omitempty"`
	Lng                *float64 `json:"lng,omitempty"`
	FallbackDistanceKm *float64 `json:"fallback_distance_km,omitempty"`
}

// HasCoordinates reports whether both lat and lng are known.
func (l StoreLocation) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// DistanceSource names the strategy that produced a store's distance.
type DistanceSource string

const (
	// DistanceSourceLive is measured from the customer's geolocation.
	DistanceSourceLive DistanceSource = "live"
	// DistanceSourceFallback is the static distance stored on the store.
	DistanceSourceFallback DistanceSource = "fallback"
	// DistanceSourceDefault is the configured default distance.
	DistanceSourceDefault DistanceSource = "default"
)

// StoreFee is the single delivery fee line charged for one store.
type StoreFee struct {
	StoreID         int64            `json:"store_id"`
	StoreName       string           `json:"store_name"`
	DistanceKm      float64          `json:"distance_km"`
	DistanceSource  DistanceSource   `json:"distance_source"`
	Fee             decimal.Decimal  `json:"fee"`
	// RejectedSources lists strategies that resolved a NaN or infinite
	// distance and were skipped before DistanceSource was reached.
	RejectedSources []DistanceSource `json:"rejected_sources,omitempty"`
}

// Breakdown decomposes the delivery cost of a cart. It is derived on demand
// and never persisted as-is.
type Breakdown struct {
	PerStoreFees  []StoreFee      `json:"per_store_fees"`
	TransitFee    decimal.Decimal `json:"transit_fee"`
	TotalDelivery decimal.Decimal `json:"total_delivery"`
}

// Pricing holds the shared delivery pricing configuration.
type Pricing struct {
	BaseFee           decimal.Decimal
	PerKmFee          decimal.Decimal
	DefaultDistanceKm float64
}

// DefaultPricing returns the stock storefront pricing: 50 base, 12.75 per km, 5 km default.
func DefaultPricing() Pricing {
	return Pricing{
		BaseFee:           decimal.NewFromInt(50),
		PerKmFee:          decimal.RequireFromString("12.75"),
		DefaultDistanceKm: 5,
	}
}

// FeeFor applies the distance pricing formula, rounded to a whole currency
// unit. decimal.Round rounds half away from zero, which is half-up for the
// non-negative amounts produced here. A NaN or infinite distance cannot be
// priced and is billed as 0 km.
func (p Pricing) FeeFor(distanceKm float64) decimal.Decimal {
	if !finite(distanceKm) {
		distanceKm = 0
	}
	distance := decimal.NewFromFloat(distanceKm)
	return p.BaseFee.Add(p.PerKmFee.Mul(distance)).Round(0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
