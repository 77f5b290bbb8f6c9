package analytics

import (
	"strings"
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/analytics/types"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	day = 24 * time.Hour
	// MaxRangeDays bounds custom ranges so the daily series stays small.
	MaxRangeDays = 366
)

var presetDays = map[types.Preset]int{
	types.Preset7Days:  7,
	types.Preset30Days: 30,
	types.Preset90Days: 90,
}

// RangeInput is the raw query: either a preset or an RFC3339 from/to pair.
type RangeInput struct {
	Preset string
	From   string
	To     string
}

// ResolveRange turns input into a UTC window. A preset covers the last N UTC
// days including today; custom ranges take precedence when both bounds are set.
// Empty input means the 30 day preset.
func ResolveRange(input RangeInput, now time.Time) (types.Range, error) {
	now = now.UTC()
	from, to := strings.TrimSpace(input.From), strings.TrimSpace(input.To)
	if from != "" || to != "" {
		return customRange(from, to)
	}

	preset := types.Preset(strings.ToLower(strings.TrimSpace(input.Preset)))
	if preset == "" {
		preset = types.Preset30Days
	}
	days, ok := presetDays[preset]
	if !ok {
		return types.Range{}, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown range preset %q", input.Preset)
	}
	start := startOfDay(now).Add(-time.Duration(days-1) * day)
	return types.Range{From: start, To: now, Preset: preset}, nil
}

func customRange(rawFrom, rawTo string) (types.Range, error) {
	if rawFrom == "" || rawTo == "" {
		return types.Range{}, pkgerrors.New(pkgerrors.CodeValidation, "both from and to are required for a custom range")
	}
	from, err := time.Parse(time.RFC3339, rawFrom)
	if err != nil {
		return types.Range{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "from must be RFC3339")
	}
	to, err := time.Parse(time.RFC3339, rawTo)
	if err != nil {
		return types.Range{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "to must be RFC3339")
	}
	from, to = from.UTC(), to.UTC()
	if !from.Before(to) {
		return types.Range{}, pkgerrors.New(pkgerrors.CodeValidation, "from must be before to")
	}
	if to.Sub(from) > MaxRangeDays*day {
		return types.Range{}, pkgerrors.Newf(pkgerrors.CodeValidation, "range cannot exceed %d days", MaxRangeDays)
	}
	return types.Range{From: from, To: to, Preset: types.PresetCustom}, nil
}

// DailySeries buckets points into UTC days covering r, zero-filling days
// without orders.
func DailySeries(r types.Range, points []types.OrderPoint) []types.DailyPoint {
	first := startOfDay(r.From)
	last := startOfDay(r.To.Add(-time.Nanosecond))
	if last.Before(first) {
		last = first
	}

	series := make([]types.DailyPoint, 0, int(last.Sub(first)/day)+1)
	index := make(map[string]int)
	for d := first; !d.After(last); d = d.Add(day) {
		key := d.Format(time.DateOnly)
		index[key] = len(series)
		series = append(series, types.DailyPoint{Date: key, Revenue: decimal.Zero})
	}

	for _, p := range points {
		i, ok := index[p.PlacedAt.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		series[i].Orders++
		series[i].Revenue = series[i].Revenue.Add(p.GrandTotal)
	}
	return series
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
