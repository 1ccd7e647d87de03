package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const chartBody = `{"chart":{"result":[{
  "meta":{"symbol":"0050.TW","exchangeTimezoneName":"Asia/Taipei"},
  "timestamp":[1788224400,1788310800,1788397200,1788483600],
  "indicators":{
    "quote":[{"close":[100.0,null,105.0,110.0],"volume":[1000,null,2000,3000]}],
    "adjclose":[{"adjclose":[99.5,null,104.5,null]}]
  }}],"error":null}}`

func newTestYahoo(t *testing.T, status int, body string) (*YahooFetcher, *string) {
	t.Helper()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	return f, &gotPath
}

func TestYahooFetchDaily_ParsesAndSkipsNulls(t *testing.T) {
	f, path := newTestYahoo(t, http.StatusOK, chartBody)
	start := time.Unix(1788224400, 0).Add(-time.Hour)
	end := start.AddDate(0, 0, 10)

	bars, err := f.FetchDaily(context.Background(), "0050.TW", start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars (null row dropped), got %d", len(bars))
	}
	if bars[0].Close != 99.5 {
		t.Errorf("expected adjusted close 99.5, got %v", bars[0].Close)
	}
	if bars[2].Close != 110.0 {
		t.Errorf("expected raw close when adjclose is null, got %v", bars[2].Close)
	}
	if bars[1].Volume != 2000 {
		t.Errorf("expected volume 2000, got %v", bars[1].Volume)
	}
	if bars[0].Time.Location().String() != "Asia/Taipei" {
		t.Errorf("expected exchange timezone, got %s", bars[0].Time.Location())
	}
	if !strings.Contains(*path, "/v8/finance/chart/0050.TW") || !strings.Contains(*path, "interval=1d") {
		t.Errorf("unexpected request path %s", *path)
	}
}

func TestYahooFetchDaily_EndExclusive(t *testing.T) {
	f, _ := newTestYahoo(t, http.StatusOK, chartBody)
	start := time.Unix(1788224400, 0)
	end := time.Unix(1788397200, 0)
	bars, err := f.FetchDaily(context.Background(), "0050.TW", start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected only the first bar before end, got %d", len(bars))
	}
}

func TestYahooFetchDaily_EmptyResult(t *testing.T) {
	f, _ := newTestYahoo(t, http.StatusOK, `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{}]}}],"error":null}}`)
	bars, err := f.FetchDaily(context.Background(), "0050.TW", time.Now().AddDate(0, 0, -5), time.Now())
	if err != nil {
		t.Fatalf("empty range must not be an error: %v", err)
	}
	if len(bars) != 0 {
		t.Errorf("expected no bars, got %d", len(bars))
	}
}

func TestYahooFetchDaily_NotFound(t *testing.T) {
	f, _ := newTestYahoo(t, http.StatusNotFound, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	bars, err := f.FetchDaily(context.Background(), "XXX", time.Now().AddDate(0, 0, -5), time.Now())
	if err != nil || len(bars) != 0 {
		t.Errorf("expected empty result for unknown ticker, got %v / %v", bars, err)
	}
}

func TestYahooFetchDaily_APIError(t *testing.T) {
	f, _ := newTestYahoo(t, http.StatusOK, `{"chart":{"result":null,"error":{"code":"Bad","description":"Invalid input"}}}`)
	if _, err := f.FetchDaily(context.Background(), "0050.TW", time.Now().AddDate(0, 0, -5), time.Now()); err == nil {
		t.Fatal("expected api error")
	}
}

func TestYahooFetchDaily_ServerError(t *testing.T) {
	f, _ := newTestYahoo(t, http.StatusInternalServerError, "boom")
	if _, err := f.FetchDaily(context.Background(), "0050.TW", time.Now().AddDate(0, 0, -5), time.Now()); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestYahooFetchDaily_InvertedRange(t *testing.T) {
	f, path := newTestYahoo(t, http.StatusOK, chartBody)
	now := time.Now()
	bars, err := f.FetchDaily(context.Background(), "0050.TW", now, now.AddDate(0, 0, -1))
	if err != nil || bars != nil {
		t.Errorf("expected nil, nil for inverted range, got %v, %v", bars, err)
	}
	if *path != "" {
		t.Error("inverted range must not hit the network")
	}
}

func TestYahooSymbolMap(t *testing.T) {
	f := NewYahooFetcher("")
	f.SymbolMap["TW50"] = "0050.TW"
	if got := f.yahooSymbol("TW50"); got != "0050.TW" {
		t.Errorf("expected mapped symbol, got %s", got)
	}
	if got := f.yahooSymbol("0056.TW"); got != "0056.TW" {
		t.Errorf("expected passthrough, got %s", got)
	}
}
