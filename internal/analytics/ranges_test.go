package analytics

import (
	"testing"
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/analytics/types"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func TestResolveRangePresets(t *testing.T) {
	cases := []struct {
		preset string
		from   time.Time
		want   types.Preset
	}{
		{preset: "", from: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), want: types.Preset30Days},
		{preset: "7d", from: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), want: types.Preset7Days},
		{preset: "90D", from: time.Date(2025, 12, 11, 0, 0, 0, 0, time.UTC), want: types.Preset90Days},
	}
	for _, tc := range cases {
		t.Run(tc.preset, func(t *testing.T) {
			r, err := ResolveRange(RangeInput{Preset: tc.preset}, fixedNow)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if !r.From.Equal(tc.from) || !r.To.Equal(fixedNow) || r.Preset != tc.want {
				t.Fatalf("unexpected range %+v", r)
			}
		})
	}
}

func TestResolveRangeCustom(t *testing.T) {
	r, err := ResolveRange(RangeInput{From: "2026-03-01T00:00:00+05:30", To: "2026-03-02T00:00:00Z", Preset: "7d"}, fixedNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if r.Preset != types.PresetCustom || !r.From.Equal(time.Date(2026, 2, 28, 18, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected range %+v", r)
	}
	if r.From.Location() != time.UTC {
		t.Fatal("expected UTC bounds")
	}
}

func TestResolveRangeRejects(t *testing.T) {
	cases := map[string]RangeInput{
		"unknown preset": {Preset: "1y"},
		"only from":      {From: "2026-03-01T00:00:00Z"},
		"bad format":     {From: "2026-03-01", To: "2026-03-02"},
		"reversed":       {From: "2026-03-02T00:00:00Z", To: "2026-03-01T00:00:00Z"},
		"too long":       {From: "2024-01-01T00:00:00Z", To: "2026-01-01T00:00:00Z"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ResolveRange(input, fixedNow); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDailySeriesZeroFillsAndBuckets(t *testing.T) {
	r := types.Range{
		From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	points := []types.OrderPoint{
		{PlacedAt: time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC), GrandTotal: decimal.NewFromInt(100)},
		{PlacedAt: time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC), GrandTotal: decimal.NewFromInt(50)},
		{PlacedAt: time.Date(2026, 3, 3, 4, 0, 0, 0, time.FixedZone("IST", 19800)), GrandTotal: decimal.NewFromInt(10)},
	}

	series := DailySeries(r, points)
	if len(series) != 3 {
		t.Fatalf("expected 3 days, got %+v", series)
	}
	if series[0].Date != "2026-03-01" || series[0].Orders != 2 || !series[0].Revenue.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected first day %+v", series[0])
	}
	// 04:00 IST on the 3rd is 22:30 UTC on the 2nd
	if series[1].Date != "2026-03-02" || series[1].Orders != 1 || !series[1].Revenue.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected second day %+v", series[1])
	}
	if series[2].Orders != 0 || !series[2].Revenue.IsZero() {
		t.Fatalf("expected zero-filled third day, got %+v", series[2])
	}
}
