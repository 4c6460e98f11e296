package market

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"go.uber.org/zap"
)

func symbols(t *testing.T, tickers ...string) []Symbol {
	t.Helper()
	out := make([]Symbol, 0, len(tickers))
	for _, tk := range tickers {
		s, ok := LookupSymbol(tk)
		if !ok {
			t.Fatalf("unknown ticker %s", tk)
		}
		out = append(out, s)
	}
	return out
}

func TestCoinGeckoSourceQuotes(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("ids")
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":67000.12,"usd_24h_change":1.5},"solana":{"usd":150.5,"usd_24h_change":-2.25}}`))
	}))
	defer srv.Close()

	src := NewCoinGeckoSource(srv.URL, time.Second, zap.NewNop())
	quotes, err := src.Quotes(context.Background(), symbols(t, "BTC", "ETH", "SOL"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "bitcoin,ethereum,solana" {
		t.Fatalf("unexpected ids param %q", gotQuery)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes (ethereum missing), got %d", len(quotes))
	}
	if quotes[0].Symbol != "BTC" || quotes[0].Price.String() != "67000.12" || quotes[0].Source != "CoinGecko" {
		t.Fatalf("unexpected btc quote %+v", quotes[0])
	}
	if quotes[1].Symbol != "SOL" || quotes[1].PercentChange != -2.25 {
		t.Fatalf("unexpected sol quote %+v", quotes[1])
	}
}

func TestCoinGeckoSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	src := NewCoinGeckoSource(srv.URL, time.Second, zap.NewNop())
	if _, err := src.Quotes(context.Background(), symbols(t, "BTC")); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

type fakeAlpaca struct {
	trades map[string]float64
	bars   []marketdata.Bar
	err    error
}

func (f *fakeAlpaca) GetLatestTrade(symbol string, _ marketdata.GetLatestTradeRequest) (*marketdata.Trade, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.trades[symbol]
	if !ok {
		return nil, nil
	}
	return &marketdata.Trade{Price: p}, nil
}

func (f *fakeAlpaca) GetBars(_ string, _ marketdata.GetBarsRequest) ([]marketdata.Bar, error) {
	return f.bars, nil
}

func TestAlpacaSourceQuotes(t *testing.T) {
	fake := &fakeAlpaca{
		trades: map[string]float64{"SPY": 505},
		bars:   []marketdata.Bar{{Open: 490, Close: 500}, {Open: 501, Close: 504}},
	}
	src := &AlpacaSource{client: fake, logger: zap.NewNop(), now: time.Now}

	quotes, err := src.Quotes(context.Background(), symbols(t, "SPY", "AAPL"))
	if len(quotes) != 1 || quotes[0].Symbol != "SPY" {
		t.Fatalf("expected only SPY quote, got %+v", quotes)
	}
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected AAPL failure reported as ErrNoData, got %v", err)
	}
	if math.Abs(quotes[0].PercentChange-1.0) > 1e-9 {
		t.Fatalf("expected +1%% vs previous close, got %v", quotes[0].PercentChange)
	}
	if quotes[0].Price.InexactFloat64() != 505 {
		t.Fatalf("unexpected price %v", quotes[0].Price)
	}
}

func TestAlpacaSourceDoesNotRetry(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"too many requests"}`))
	}))
	defer srv.Close()

	src := newAlpacaSource(marketdata.ClientOpts{BaseURL: srv.URL, APIKey: "k", APISecret: "s"}, 2*time.Second, zap.NewNop())

	start := time.Now()
	quotes, err := src.Quotes(context.Background(), symbols(t, "SPY"))
	if err == nil {
		t.Fatalf("expected error on 429")
	}
	if len(quotes) != 0 {
		t.Fatalf("expected no quotes, got %+v", quotes)
	}
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Fatalf("expected a single request, got %d", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected fast failure, took %v", elapsed)
	}
}

func TestAlpacaSourceTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	src := newAlpacaSource(marketdata.ClientOpts{BaseURL: srv.URL, APIKey: "k", APISecret: "s"}, 50*time.Millisecond, zap.NewNop())

	start := time.Now()
	if _, err := src.Quotes(context.Background(), symbols(t, "SPY")); err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected quote bounded by timeout, took %v", elapsed)
	}
}

func TestDailyChange(t *testing.T) {
	if got := dailyChange(110, []marketdata.Bar{{Open: 100, Close: 105}}); math.Abs(got-10) > 1e-9 {
		t.Fatalf("single bar should use open, got %v", got)
	}
	if got := dailyChange(110, nil); got != 0 {
		t.Fatalf("no bars should give 0, got %v", got)
	}
}
