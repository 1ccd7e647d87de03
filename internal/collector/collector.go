package collector

import (
	"context"
	"time"

	"ETFPulse/internal/model"
	"ETFPulse/internal/trace"
)

// StaticFetcher returns fixed bars per symbol for development and testing.
// Errs lets a test make a symbol fail.
type StaticFetcher struct {
	Bars  map[string][]model.Bar
	Errs  map[string]error
	Calls []string
}

func (m *StaticFetcher) Name() string { return "static" }

func (m *StaticFetcher) FetchDaily(_ context.Context, symbol string, start, end time.Time) ([]model.Bar, error) {
	m.Calls = append(m.Calls, symbol)
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	src := m.Bars[symbol]
	return inRange(append([]model.Bar(nil), src...), start, end), nil
}

// GenerateBars builds count daily bars ending the day before end, drifting
// by step per bar. Used for demos and tests.
func GenerateBars(basePrice, step float64, count int, end time.Time) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i)*step)
		bars[i] = model.Bar{
			Time:   end.AddDate(0, 0, -(count - i)),
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches one series per selected symbol.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches each symbol in turn. A failed fetch is logged and yields an
// empty series for that symbol; the remaining symbols are still fetched.
func (c *Collector) Collect(ctx context.Context, symbols []string, start, end time.Time) []model.SymbolSeries {
	out := make([]model.SymbolSeries, 0, len(symbols))
	for _, sym := range symbols {
		s := model.SymbolSeries{Symbol: sym}
		bars, err := c.Fetcher.FetchDaily(ctx, sym, start, end)
		switch {
		case err != nil:
			trace.Logf(ctx, "[WARN] %s fetch %s failed: %v", c.Fetcher.Name(), sym, err)
		case len(bars) == 0:
			trace.Logf(ctx, "[INFO] %s: no data for %s between %s and %s",
				c.Fetcher.Name(), sym, start.Format("2006-01-02"), end.Format("2006-01-02"))
		default:
			s.Bars = bars
		}
		out = append(out, s)
	}
	return out
}

// AnyData reports whether at least one series has bars.
func AnyData(series []model.SymbolSeries) bool {
	for _, s := range series {
		if !s.Empty() {
			return true
		}
	}
	return false
}
