package delivery

import "github.com/angelmondragon/voltmart-backend/pkg/geo"

// DistanceStrategy resolves the distance between the customer and a store.
// loc is nil when the catalog has no entry for the store. ok is false when the
// strategy cannot produce a distance and the next strategy should be tried.
// A resolved NaN or infinite distance is rejected by the calculator, which
// moves on to the next strategy and reports the rejection on the fee line.
type DistanceStrategy interface {
	Source() DistanceSource
	Resolve(user *geo.Point, loc *StoreLocation) (km float64, ok bool)
}

// LiveDistance measures from the customer's geolocation to the store's coordinates.
type LiveDistance struct{}

// Source reports DistanceSourceLive.
func (LiveDistance) Source() DistanceSource { return DistanceSourceLive }

// Resolve needs both the customer point and the store's coordinates.
// NaN coordinates yield a NaN distance.
func (LiveDistance) Resolve(user *geo.Point, loc *StoreLocation) (float64, bool) {
	if user == nil || loc == nil || !loc.HasCoordinates() {
		return 0, false
	}
	return geo.DistanceKm(user.Lat, user.Lng, *loc.Lat, *loc.Lng), true
}

// FallbackDistance uses the static distance stored on the store.
type FallbackDistance struct{}

// Source reports DistanceSourceFallback.
func (FallbackDistance) Source() DistanceSource { return DistanceSourceFallback }

// Resolve returns the store's stored distance when one is set.
func (FallbackDistance) Resolve(_ *geo.Point, loc *StoreLocation) (float64, bool) {
	if loc == nil || loc.FallbackDistanceKm == nil {
		return 0, false
	}
	return *loc.FallbackDistanceKm, true
}

// DefaultDistance always resolves to a fixed distance.
type DefaultDistance struct {
	Km float64
}

// Source reports DistanceSourceDefault.
func (DefaultDistance) Source() DistanceSource { return DistanceSourceDefault }

// Resolve always succeeds with Km.
func (d DefaultDistance) Resolve(_ *geo.Point, _ *StoreLocation) (float64, bool) {
	return d.Km, true
}

// DefaultStrategies returns the live → fallback → default chain.
func DefaultStrategies(defaultKm float64) []DistanceStrategy {
	return []DistanceStrategy{
		LiveDistance{},
		FallbackDistance{},
		DefaultDistance{Km: defaultKm},
	}
}
