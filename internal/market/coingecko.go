package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"autovest/internal/domain"
)

// CoinGeckoSource cotiza criptomonedas con la API pública de CoinGecko.
type CoinGeckoSource struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

// NewCoinGeckoSource crea la fuente con el timeout dado por request.
func NewCoinGeckoSource(baseURL string, timeout time.Duration, logger *zap.Logger) *CoinGeckoSource {
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoinGeckoSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
	}
}

func (s *CoinGeckoSource) Quotes(ctx context.Context, symbols []Symbol) ([]domain.MarketQuote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		ids = append(ids, sym.CoinGeckoID)
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd")
	params.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/simple/price?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: coingecko status=%d", ErrNoData, resp.StatusCode)
	}

	var body map[string]map[string]json.Number
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}

	fetched := s.now().UTC()
	var quotes []domain.MarketQuote
	for _, sym := range symbols {
		entry, ok := body[sym.CoinGeckoID]
		if !ok {
			s.logger.Warn("coingecko missing symbol", zap.String("id", sym.CoinGeckoID))
			continue
		}
		price, err := decimal.NewFromString(entry["usd"].String())
		if err != nil {
			s.logger.Warn("coingecko invalid price", zap.String("id", sym.CoinGeckoID), zap.Error(err))
			continue
		}
		change, _ := entry["usd_24h_change"].Float64()
		quotes = append(quotes, domain.MarketQuote{
			Symbol:        sym.Ticker,
			Name:          sym.Name,
			Kind:          domain.AssetCrypto,
			Price:         price,
			PercentChange: change,
			Source:        "CoinGecko",
			FetchedAt:     fetched,
		})
	}
	if len(quotes) == 0 {
		return nil, ErrNoData
	}
	return quotes, nil
}
