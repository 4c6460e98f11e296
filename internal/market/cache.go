package market

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"autovest/internal/domain"
)

// redisGetSetter es el subconjunto de *redis.Client que usa la cache.
type redisGetSetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedProvider guarda cotizaciones en Redis por símbolo. La cache es
// best-effort: cualquier error de Redis se registra y se consulta la fuente.
type CachedProvider struct {
	next   SnapshotProvider
	client redisGetSetter
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// NewCachedProvider envuelve next con una cache Redis. Con client nil
// devuelve next sin cambios.
func NewCachedProvider(next SnapshotProvider, client *redis.Client, ttl time.Duration, logger *zap.Logger) SnapshotProvider {
	if client == nil {
		return next
	}
	return newCachedProvider(next, client, ttl, logger)
}

func newCachedProvider(next SnapshotProvider, client redisGetSetter, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProvider{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: "market:quote:",
		logger: logger,
	}
}

func (c *CachedProvider) Snapshot(ctx context.Context, tickers []string) (domain.MarketSnapshot, error) {
	cached := make(map[string]domain.MarketQuote, len(tickers))
	var missing []string
	for _, t := range tickers {
		if q, ok := c.get(ctx, t); ok {
			cached[t] = q
			continue
		}
		missing = append(missing, t)
	}

	var err error
	if len(missing) > 0 {
		var fresh domain.MarketSnapshot
		fresh, err = c.next.Snapshot(ctx, missing)
		for _, q := range fresh.Quotes {
			cached[q.Symbol] = q
			c.set(ctx, q)
		}
	}

	var snap domain.MarketSnapshot
	for _, t := range tickers {
		if q, ok := cached[t]; ok {
			snap.Quotes = append(snap.Quotes, q)
		}
	}
	return snap, err
}

func (c *CachedProvider) get(ctx context.Context, ticker string) (domain.MarketQuote, bool) {
	raw, err := c.client.Get(ctx, c.prefix+ticker).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("market cache get failed", zap.String("symbol", ticker), zap.Error(err))
		}
		return domain.MarketQuote{}, false
	}
	var q domain.MarketQuote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		c.logger.Warn("market cache decode failed", zap.String("symbol", ticker), zap.Error(err))
		return domain.MarketQuote{}, false
	}
	return q, true
}

func (c *CachedProvider) set(ctx context.Context, q domain.MarketQuote) {
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+q.Symbol, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("market cache set failed", zap.String("symbol", q.Symbol), zap.Error(err))
	}
}
