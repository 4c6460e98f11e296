package market

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"autovest/internal/domain"
)

func TestDetectSymbols(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"Should I invest in Bitcoin?", []string{"BTC"}},
		{"ETH or SOL vs the S&P", []string{"ETH", "SOL", "SPY"}},
		{"is apple a good stock market pick", []string{"SPY", "AAPL"}},
		{"hello", nil},
	}
	for _, tc := range cases {
		got := DetectSymbols(tc.query)
		if strings.Join(got, ",") != strings.Join(tc.want, ",") {
			t.Fatalf("DetectSymbols(%q)=%v want %v", tc.query, got, tc.want)
		}
	}
}

func TestFormatSnapshot(t *testing.T) {
	t.Run("vacio", func(t *testing.T) {
		if got := FormatSnapshot(domain.MarketSnapshot{}); got != NoDataMessage {
			t.Fatalf("expected no-data message, got %q", got)
		}
	})

	t.Run("omite precios cero", func(t *testing.T) {
		snap := domain.MarketSnapshot{Quotes: []domain.MarketQuote{
			{Symbol: "BTC", Name: "Bitcoin", Kind: domain.AssetCrypto, Price: decimal.RequireFromString("67000.4"), PercentChange: 1.26},
			{Symbol: "ETH", Name: "Ethereum", Kind: domain.AssetCrypto, Price: decimal.Zero},
			{Symbol: "SPY", Name: "S&P 500 (SPY)", Kind: domain.AssetStock, Price: decimal.RequireFromString("512.3"), PercentChange: -0.44},
		}}
		out := FormatSnapshot(snap)
		if !strings.HasPrefix(out, "Current Market Data:\n") {
			t.Fatalf("unexpected header: %q", out)
		}
		if !strings.Contains(out, "Bitcoin: $67,000 (+1.3% 24h)") {
			t.Fatalf("unexpected bitcoin line: %q", out)
		}
		if !strings.Contains(out, "S&P 500 (SPY): $512.30 (-0.4%)") {
			t.Fatalf("unexpected spy line: %q", out)
		}
		if strings.Contains(out, "Ethereum") {
			t.Fatalf("zero price quote should be omitted: %q", out)
		}
	})
}

func TestDisabledProvider(t *testing.T) {
	p := NewDisabledProvider("no keys")
	if _, err := p.Snapshot(context.Background(), nil); err != nil {
		t.Fatalf("expected no error for empty request, got %v", err)
	}
	_, err := p.Snapshot(context.Background(), []string{"BTC"})
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
