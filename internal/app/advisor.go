// Package app arma el asesor a partir de la configuración. Lo comparten la
// API, el chat de consola y el benchmark.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"autovest/internal/config"
	"autovest/internal/db"
	"autovest/internal/finance"
	"autovest/internal/knowledge"
	"autovest/internal/llm"
	"autovest/internal/market"
	"autovest/internal/repository"
	"autovest/internal/retry"
	"autovest/internal/service"
)

// Advisor agrupa el servicio armado y los recursos a liberar.
type Advisor struct {
	Service  *service.AdvisorService
	QueryLog *service.QueryLogService

	pool  *pgxpool.Pool
	redis *redis.Client
}

// Options ajusta el armado por binario.
type Options struct {
	// WithQueryLog conecta Postgres si DATABASE_URL está definido.
	WithQueryLog bool
	// LLMClient reemplaza al cliente HTTP (benchmark con mocks).
	LLMClient llm.Client
}

// NewAdvisor arma el pipeline completo. Las capacidades sin configuración
// quedan deshabilitadas; sólo un error de armado del conocimiento es fatal.
func NewAdvisor(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*Advisor, error) {
	store, err := knowledge.NewDefaultStore()
	if err != nil {
		return nil, fmt.Errorf("knowledge store: %w", err)
	}
	selector, err := knowledge.NewSelector(store, logger)
	if err != nil {
		return nil, fmt.Errorf("knowledge selector: %w", err)
	}

	a := &Advisor{}

	llmClient := opts.LLMClient
	if llmClient == nil {
		llmClient = newLLMClient(cfg, logger)
	}

	policy := retry.Policy{
		MaxAttempts:    cfg.LLMMaxAttempts,
		AttemptTimeout: cfg.LLMAttemptTimeout,
		Step:           cfg.LLMRetryStep,
	}

	svc := service.NewAdvisorService(
		selector,
		finance.NewDefaultRiskModel(),
		finance.NewDefaultCurrencyConverter(),
		a.newMarketProvider(ctx, cfg, logger),
		llmClient,
		policy,
		cfg.LLMTemperature,
		logger,
	)

	if opts.WithQueryLog {
		if err := a.connectQueryLog(ctx, cfg, logger); err != nil {
			logger.Warn("query log disabled", zap.Error(err))
		} else if a.QueryLog != nil {
			svc.WithRecorder(a.QueryLog)
		}
	}

	a.Service = svc
	return a, nil
}

// Close libera conexiones abiertas.
func (a *Advisor) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

func newLLMClient(cfg *config.Config, logger *zap.Logger) llm.Client {
	if !cfg.LLMEnabled() {
		logger.Warn("llm disabled", zap.String("reason", "LLM_API_KEY not set"))
		return llm.NewDisabledClient("LLM_API_KEY not set")
	}
	return llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMMaxTokens, logger)
}

func (a *Advisor) newMarketProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) market.SnapshotProvider {
	crypto := market.NewCoinGeckoSource(cfg.CoinGeckoBaseURL, cfg.MarketTimeout, logger)

	var stocks market.QuoteSource
	if cfg.StockQuotesEnabled() {
		stocks = market.NewAlpacaSource(cfg.AlpacaAPIKey, cfg.AlpacaAPISecret, cfg.MarketTimeout, logger)
	} else {
		logger.Warn("stock quotes disabled", zap.String("reason", "APCA_API_KEY_ID/APCA_API_SECRET_KEY not set"))
		stocks = market.NewDisabledSource("alpaca credentials not set")
	}

	var provider market.SnapshotProvider = market.NewCompositeProvider(crypto, stocks, logger)

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, market cache disabled", zap.Error(err))
			_ = client.Close()
		} else {
			a.redis = client
			provider = market.NewCachedProvider(provider, client, cfg.MarketCacheTTL, logger)
		}
		cancel()
	}
	return provider
}

func (a *Advisor) connectQueryLog(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.DatabaseURL == "" {
		logger.Info("query log disabled", zap.String("reason", "DATABASE_URL not set"))
		return nil
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	if err := db.Ping(ctx, pool); err != nil {
		pool.Close()
		return fmt.Errorf("db ping: %w", err)
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			pool.Close()
			return fmt.Errorf("db migrate: %w", err)
		}
	}
	a.pool = pool
	a.QueryLog = service.NewQueryLogService(repository.NewPgQueryLogRepository(pool))
	return nil
}
