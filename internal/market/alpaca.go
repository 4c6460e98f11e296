package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"autovest/internal/domain"
)

// alpacaMarketData es el subconjunto de marketdata.Client que usamos.
type alpacaMarketData interface {
	GetLatestTrade(symbol string, req marketdata.GetLatestTradeRequest) (*marketdata.Trade, error)
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// AlpacaSource cotiza acciones y ETFs con la API de datos de Alpaca.
type AlpacaSource struct {
	client  alpacaMarketData
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewAlpacaSource crea la fuente con credenciales explícitas. Cada símbolo
// hace una sola petición acotada por timeout.
func NewAlpacaSource(apiKey, apiSecret string, timeout time.Duration, logger *zap.Logger) *AlpacaSource {
	return newAlpacaSource(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}, timeout, logger)
}

func newAlpacaSource(opts marketdata.ClientOpts, timeout time.Duration, logger *zap.Logger) *AlpacaSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	// El SDK reintenta 429/500 con RetryLimit 0; -1 corta tras el primer intento.
	opts.RetryLimit = -1
	opts.HTTPClient = &http.Client{Timeout: timeout}
	return &AlpacaSource{
		client:  marketdata.NewClient(opts),
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *AlpacaSource) Quotes(ctx context.Context, symbols []Symbol) ([]domain.MarketQuote, error) {
	var (
		quotes []domain.MarketQuote
		errs   []error
	)
	for _, sym := range symbols {
		q, err := s.quote(ctx, sym)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sym.Ticker, err))
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, errors.Join(errs...)
}

type alpacaResult struct {
	trade *marketdata.Trade
	bars  []marketdata.Bar
	err   error
}

// quote corre las llamadas del SDK (que no aceptan contexto) en una
// goroutine para respetar la cancelación.
func (s *AlpacaSource) quote(ctx context.Context, sym Symbol) (domain.MarketQuote, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan alpacaResult, 1)
	go func() {
		trade, err := s.client.GetLatestTrade(sym.Ticker, marketdata.GetLatestTradeRequest{})
		if err != nil {
			done <- alpacaResult{err: err}
			return
		}
		bars, err := s.client.GetBars(sym.Ticker, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     s.now().AddDate(0, 0, -5),
		})
		if err != nil {
			s.logger.Debug("alpaca bars failed", zap.String("symbol", sym.Ticker), zap.Error(err))
		}
		done <- alpacaResult{trade: trade, bars: bars}
	}()

	var res alpacaResult
	select {
	case <-ctx.Done():
		return domain.MarketQuote{}, ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return domain.MarketQuote{}, res.err
	}
	if res.trade == nil || res.trade.Price <= 0 {
		return domain.MarketQuote{}, ErrNoData
	}

	return domain.MarketQuote{
		Symbol:        sym.Ticker,
		Name:          sym.Name,
		Kind:          domain.AssetStock,
		Price:         decimal.NewFromFloat(res.trade.Price),
		PercentChange: dailyChange(res.trade.Price, res.bars),
		Source:        "Alpaca",
		FetchedAt:     s.now().UTC(),
	}, nil
}

// dailyChange compara contra el cierre anterior; con una sola barra usa
// su apertura.
func dailyChange(price float64, bars []marketdata.Bar) float64 {
	var ref float64
	switch {
	case len(bars) >= 2:
		ref = bars[len(bars)-2].Close
	case len(bars) == 1:
		ref = bars[0].Open
	}
	if ref <= 0 {
		return 0
	}
	return (price - ref) / ref * 100
}
