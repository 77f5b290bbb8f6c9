package delivery

import (
	"math"
	"testing"

	"github.com/angelmondragon/voltmart-backend/pkg/geo"
)

func TestLiveDistance(t *testing.T) {
	user := &geo.Point{Lat: 12.9352, Lng: 77.6245}
	cases := []struct {
		name   string
		user   *geo.Point
		loc    *StoreLocation
		wantOK bool
		wantKm float64
	}{
		{name: "no user", user: nil, loc: &StoreLocation{Lat: ptr(12.9756), Lng: ptr(77.6050)}},
		{name: "no store", user: user, loc: nil},
		{name: "store without coordinates", user: user, loc: &StoreLocation{FallbackDistanceKm: ptr(3)}},
		{name: "store with only lat", user: user, loc: &StoreLocation{Lat: ptr(12.9756)}},
		{name: "resolved", user: user, loc: &StoreLocation{Lat: ptr(12.9756), Lng: ptr(77.6050)}, wantOK: true, wantKm: 5.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			km, ok := LiveDistance{}.Resolve(tc.user, tc.loc)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v got %v", tc.wantOK, ok)
			}
			if ok && km != tc.wantKm {
				t.Fatalf("expected %v km got %v", tc.wantKm, km)
			}
		})
	}
}

func TestFallbackDistance(t *testing.T) {
	if _, ok := (FallbackDistance{}).Resolve(nil, nil); ok {
		t.Fatal("expected missing store to be unresolved")
	}
	if _, ok := (FallbackDistance{}).Resolve(nil, &StoreLocation{}); ok {
		t.Fatal("expected store without fallback to be unresolved")
	}
	km, ok := FallbackDistance{}.Resolve(nil, &StoreLocation{FallbackDistanceKm: ptr(8)})
	if !ok || km != 8 {
		t.Fatalf("expected 8km got %v ok=%v", km, ok)
	}
}

func TestLiveDistancePropagatesNaN(t *testing.T) {
	km, ok := LiveDistance{}.Resolve(&geo.Point{Lat: math.NaN(), Lng: 77.6}, &StoreLocation{Lat: ptr(12.97), Lng: ptr(77.59)})
	if !ok || !math.IsNaN(km) {
		t.Fatalf("expected NaN distance, got %v ok=%v", km, ok)
	}
}

func TestDefaultDistance(t *testing.T) {
	km, ok := DefaultDistance{Km: 5}.Resolve(nil, nil)
	if !ok || km != 5 {
		t.Fatalf("expected 5km got %v ok=%v", km, ok)
	}
}

type neverResolves struct{}

func (neverResolves) Source() DistanceSource { return "never" }

func (neverResolves) Resolve(*geo.Point, *StoreLocation) (float64, bool) { return 0, false }

func TestCalculatorFallsBackToPricingDefaultWhenChainExhausted(t *testing.T) {
	calc := NewCalculator(DefaultPricing(), WithStrategies(neverResolves{}))
	got := calc.ComputeBreakdown([]LineItem{{OfferID: 1, Quantity: 1, StoreID: 1}}, nil, nil)
	if got.PerStoreFees[0].DistanceSource != DistanceSourceDefault {
		t.Fatalf("expected default source got %s", got.PerStoreFees[0].DistanceSource)
	}
	if got.PerStoreFees[0].DistanceKm != 5 {
		t.Fatalf("expected 5km got %v", got.PerStoreFees[0].DistanceKm)
	}
}

func TestFeeForRoundsHalfUp(t *testing.T) {
	pricing := DefaultPricing()
	cases := map[float64]string{
		0:   "50",
		5:   "114",
		8:   "152",
		2:   "76",
		0.2: "53",
	}
	for km, want := range cases {
		assertDecimal(t, want, pricing.FeeFor(km))
	}
	for _, km := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assertDecimal(t, "50", pricing.FeeFor(km))
	}
}
