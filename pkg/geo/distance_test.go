package geo

import (
	"math"
	"testing"
)

func TestDistanceKmSamePointIsZero(t *testing.T) {
	points := []Point{
		{Lat: 12.9716, Lng: 77.5946},
		{Lat: 0, Lng: 0},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 89.9, Lng: -179.9},
	}
	for _, p := range points {
		if got := DistanceKm(p.Lat, p.Lng, p.Lat, p.Lng); got != 0 {
			t.Fatalf("expected 0 for %+v, got %v", p, got)
		}
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	pairs := [][2]Point{
		{{Lat: 12.9716, Lng: 77.5946}, {Lat: 12.9352, Lng: 77.6245}},
		{{Lat: 51.5074, Lng: -0.1278}, {Lat: 48.8566, Lng: 2.3522}},
		{{Lat: -1.2921, Lng: 36.8219}, {Lat: 40.7128, Lng: -74.0060}},
	}
	for _, pair := range pairs {
		ab := pair[0].DistanceTo(pair[1])
		ba := pair[1].DistanceTo(pair[0])
		if ab != ba {
			t.Fatalf("expected symmetric distance, got %v and %v", ab, ba)
		}
	}
}

func TestDistanceKmKnownValues(t *testing.T) {
	cases := []struct {
		name string
		a, b Point
		want float64
	}{
		{
			name: "london to paris",
			a:    Point{Lat: 51.5074, Lng: -0.1278},
			b:    Point{Lat: 48.8566, Lng: 2.3522},
			want: 343.6,
		},
		{
			name: "one degree of latitude",
			a:    Point{Lat: 0, Lng: 0},
			b:    Point{Lat: 1, Lng: 0},
			want: 111.2,
		},
		{
			name: "koramangala to mg road",
			a:    Point{Lat: 12.9352, Lng: 77.6245},
			b:    Point{Lat: 12.9756, Lng: 77.6050},
			want: 5.0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.DistanceTo(tc.b); got != tc.want {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestDistanceKmRoundsToOneDecimal(t *testing.T) {
	got := DistanceKm(12.9716, 77.5946, 12.9352, 77.6245)
	if scaled := got * 10; scaled != math.Round(scaled) {
		t.Fatalf("expected one decimal place, got %v", got)
	}
}

func TestDistanceKmPropagatesNaN(t *testing.T) {
	if got := DistanceKm(math.NaN(), 77.5946, 12.9716, 77.5946); !math.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
	if (Point{Lat: math.NaN()}).IsFinite() {
		t.Fatal("expected NaN point to be non-finite")
	}
	if !(Point{Lat: 1, Lng: 2}).IsFinite() {
		t.Fatal("expected point to be finite")
	}
}
