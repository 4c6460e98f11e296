package market

import (
	"strings"

	"autovest/internal/domain"
)

// Symbol describe un activo cotizable y cómo detectarlo en una consulta.
type Symbol struct {
	Ticker      string
	Name        string
	Kind        domain.AssetKind
	CoinGeckoID string
	keywords    []string
}

var knownSymbols = []Symbol{
	{Ticker: "BTC", Name: "Bitcoin", Kind: domain.AssetCrypto, CoinGeckoID: "bitcoin", keywords: []string{"bitcoin", "btc"}},
	{Ticker: "ETH", Name: "Ethereum", Kind: domain.AssetCrypto, CoinGeckoID: "ethereum", keywords: []string{"ethereum", "eth"}},
	{Ticker: "SOL", Name: "Solana", Kind: domain.AssetCrypto, CoinGeckoID: "solana", keywords: []string{"solana", "sol"}},
	{Ticker: "SPY", Name: "S&P 500 (SPY)", Kind: domain.AssetStock, keywords: []string{"s&p", "spy", "index", "stock market"}},
	{Ticker: "AAPL", Name: "Apple", Kind: domain.AssetStock, keywords: []string{"apple", "aapl"}},
}

// LookupSymbol busca un símbolo conocido por ticker.
func LookupSymbol(ticker string) (Symbol, bool) {
	for _, s := range knownSymbols {
		if s.Ticker == ticker {
			return s, true
		}
	}
	return Symbol{}, false
}

// DetectSymbols devuelve los tickers mencionados en la consulta, en orden fijo.
func DetectSymbols(query string) []string {
	q := strings.ToLower(query)
	var out []string
	for _, s := range knownSymbols {
		for _, kw := range s.keywords {
			if strings.Contains(q, kw) {
				out = append(out, s.Ticker)
				break
			}
		}
	}
	return out
}
