package market

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"autovest/internal/domain"
)

var (
	ErrDisabled = errors.New("market data disabled")
	ErrNoData   = errors.New("market data unavailable")
)

// SnapshotProvider obtiene cotizaciones para una lista de símbolos.
// Devuelve lo que pudo obtener junto con el error de lo que falló; el
// llamador trata el snapshot como opcional.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, tickers []string) (domain.MarketSnapshot, error)
}

// QuoteSource cotiza un grupo de símbolos de un mismo origen.
type QuoteSource interface {
	Quotes(ctx context.Context, symbols []Symbol) ([]domain.MarketQuote, error)
}

type disabledSource struct {
	reason string
}

// NewDisabledSource devuelve un QuoteSource que siempre falla con ErrDisabled.
func NewDisabledSource(reason string) QuoteSource {
	return &disabledSource{reason: reason}
}

func (s *disabledSource) Quotes(_ context.Context, _ []Symbol) ([]domain.MarketQuote, error) {
	return nil, disabledErr(s.reason)
}

type disabledProvider struct {
	reason string
}

// NewDisabledProvider devuelve un SnapshotProvider sin datos.
func NewDisabledProvider(reason string) SnapshotProvider {
	return &disabledProvider{reason: reason}
}

func (p *disabledProvider) Snapshot(_ context.Context, tickers []string) (domain.MarketSnapshot, error) {
	if len(tickers) == 0 {
		return domain.MarketSnapshot{}, nil
	}
	return domain.MarketSnapshot{}, disabledErr(p.reason)
}

func disabledErr(reason string) error {
	if reason == "" {
		return ErrDisabled
	}
	return fmt.Errorf("%w: %s", ErrDisabled, reason)
}

var printer = message.NewPrinter(language.English)

// NoDataMessage se usa cuando no hay cotizaciones.
const NoDataMessage = "No specific market data requested."

// FormatSnapshot arma el bloque de mercado para prompt y fallback.
// Omite cotizaciones sin precio.
func FormatSnapshot(s domain.MarketSnapshot) string {
	var lines []string
	for _, q := range s.Quotes {
		if !q.Price.IsPositive() {
			continue
		}
		lines = append(lines, formatQuote(q))
	}
	if len(lines) == 0 {
		return NoDataMessage
	}
	return "Current Market Data:\n" + strings.Join(lines, "\n")
}

func formatQuote(q domain.MarketQuote) string {
	price := q.Price.InexactFloat64()
	switch {
	case q.Kind == domain.AssetCrypto && q.Symbol == "BTC":
		return printer.Sprintf("%s: $%.0f (%+.1f%% 24h)", q.Name, price, q.PercentChange)
	case q.Kind == domain.AssetCrypto:
		return printer.Sprintf("%s: $%.2f (%+.1f%% 24h)", q.Name, price, q.PercentChange)
	default:
		return printer.Sprintf("%s: $%.2f (%+.1f%%)", q.Name, price, q.PercentChange)
	}
}
