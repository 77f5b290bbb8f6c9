package delivery

import "github.com/shopspring/decimal"

// TransitFeePolicy computes the cross-store transit component of a breakdown.
// It receives the per-store fee lines already computed for the cart.
type TransitFeePolicy interface {
	TransitFee(fees []StoreFee) decimal.Decimal
}

// NoTransitFee charges nothing. Multi-store consolidation pricing is not
// defined yet; a policy implementing it plugs in via WithTransitFeePolicy.
type NoTransitFee struct{}

func (NoTransitFee) TransitFee([]StoreFee) decimal.Decimal {
	return decimal.Zero
}
