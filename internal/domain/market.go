package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetKind distingue el origen de cotización de un símbolo.
type AssetKind string

const (
	AssetCrypto AssetKind = "crypto"
	AssetStock  AssetKind = "stock"
)

// MarketQuote es una cotización puntual.
type MarketQuote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Kind          AssetKind       `json:"kind"`
	Price         decimal.Decimal `json:"price"`
	PercentChange float64         `json:"percent_change"`
	Source        string          `json:"source"`
	FetchedAt     time.Time       `json:"fetched_at"`
}

// MarketSnapshot conserva el orden en que se pidieron los símbolos.
type MarketSnapshot struct {
	Quotes []MarketQuote `json:"quotes"`
}

// Empty indica que no hay cotizaciones utilizables.
func (s MarketSnapshot) Empty() bool { return len(s.Quotes) == 0 }
