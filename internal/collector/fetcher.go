package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"ETFPulse/internal/model"
)

// Fetcher defines the interface for fetching daily market data.
// End is exclusive. An empty slice with a nil error means no data in range.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error)
	Name() string
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// inRange keeps bars with start <= t < end.
func inRange(bars []model.Bar, start, end time.Time) []model.Bar {
	out := bars[:0]
	for _, b := range bars {
		if b.Time.Before(start) || !b.Time.Before(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}
