package market

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"autovest/internal/domain"
)

// CompositeProvider reparte los símbolos entre la fuente cripto y la de
// acciones. Un fallo en una fuente no afecta a la otra.
type CompositeProvider struct {
	crypto QuoteSource
	stocks QuoteSource
	logger *zap.Logger
}

// NewCompositeProvider arma el proveedor. Una fuente nil queda deshabilitada.
func NewCompositeProvider(crypto, stocks QuoteSource, logger *zap.Logger) *CompositeProvider {
	if crypto == nil {
		crypto = NewDisabledSource("crypto quotes not configured")
	}
	if stocks == nil {
		stocks = NewDisabledSource("stock quotes not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompositeProvider{crypto: crypto, stocks: stocks, logger: logger}
}

func (p *CompositeProvider) Snapshot(ctx context.Context, tickers []string) (domain.MarketSnapshot, error) {
	var cryptoSyms, stockSyms []Symbol
	var errs []error
	for _, t := range tickers {
		sym, ok := LookupSymbol(t)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: unknown symbol %s", ErrNoData, t))
			continue
		}
		if sym.Kind == domain.AssetCrypto {
			cryptoSyms = append(cryptoSyms, sym)
		} else {
			stockSyms = append(stockSyms, sym)
		}
	}

	bySymbol := make(map[string]domain.MarketQuote, len(tickers))
	collect := func(src QuoteSource, syms []Symbol, name string) {
		if len(syms) == 0 {
			return
		}
		quotes, err := src.Quotes(ctx, syms)
		if err != nil {
			p.logger.Warn("quote source failed", zap.String("source", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		for _, q := range quotes {
			bySymbol[q.Symbol] = q
		}
	}
	collect(p.crypto, cryptoSyms, "crypto")
	collect(p.stocks, stockSyms, "stocks")

	var snap domain.MarketSnapshot
	for _, t := range tickers {
		if q, ok := bySymbol[t]; ok {
			snap.Quotes = append(snap.Quotes, q)
		}
	}
	return snap, errors.Join(errs...)
}
