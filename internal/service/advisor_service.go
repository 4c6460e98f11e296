package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"autovest/internal/domain"
	"autovest/internal/finance"
	"autovest/internal/knowledge"
	"autovest/internal/llm"
	"autovest/internal/market"
	"autovest/internal/retry"
)

// Estados del pipeline, en el orden en que se recorren.
const (
	stateGatherContext     = "GATHER_CONTEXT"
	stateRetrieveKnowledge = "RETRIEVE_KNOWLEDGE"
	stateEnrich            = "ENRICH"
	stateSynthesize        = "SYNTHESIZE"
	stateSuccess           = "SUCCESS"
	stateFallback          = "FALLBACK"
)

const defaultTemperature = 0.5

// QueryRecorder persiste el resultado de una consulta. Es opcional.
type QueryRecorder interface {
	Record(ctx context.Context, bundle domain.ResponseBundle) error
}

// AdvisorService responde consultas financieras combinando conocimiento,
// análisis numérico, datos de mercado y el modelo generativo. Nunca devuelve
// error: cualquier fallo del modelo termina en la respuesta determinística.
type AdvisorService struct {
	selector    *knowledge.Selector
	risk        *finance.RiskModel
	currency    *finance.CurrencyConverter
	market      market.SnapshotProvider
	llmClient   llm.Client
	retry       retry.Policy
	temperature float64
	recorder    QueryRecorder
	logger      *zap.Logger
	now         func() time.Time
}

func NewAdvisorService(
	selector *knowledge.Selector,
	risk *finance.RiskModel,
	currency *finance.CurrencyConverter,
	marketProvider market.SnapshotProvider,
	llmClient llm.Client,
	policy retry.Policy,
	temperature float64,
	logger *zap.Logger,
) *AdvisorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if risk == nil {
		risk = finance.NewDefaultRiskModel()
	}
	if currency == nil {
		currency = finance.NewDefaultCurrencyConverter()
	}
	if marketProvider == nil {
		marketProvider = market.NewDisabledProvider("market data not configured")
	}
	if llmClient == nil {
		llmClient = llm.NewDisabledClient("generative model not configured")
	}
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	if policy.Notify == nil {
		policy.Notify = func(err error, wait time.Duration) {
			logger.Warn("llm attempt failed, retrying", zap.Error(err), zap.Duration("wait", wait))
		}
	}
	return &AdvisorService{
		selector:    selector,
		risk:        risk,
		currency:    currency,
		market:      marketProvider,
		llmClient:   llmClient,
		retry:       policy,
		temperature: temperature,
		logger:      logger,
		now:         time.Now,
	}
}

// WithRecorder registra cada bundle producido. Los fallos del recorder sólo
// se loguean.
func (s *AdvisorService) WithRecorder(r QueryRecorder) *AdvisorService {
	s.recorder = r
	return s
}

// Answer procesa una consulta de punta a punta.
func (s *AdvisorService) Answer(ctx context.Context, query string) domain.ResponseBundle {
	start := s.now()
	bundle := domain.ResponseBundle{
		ID:        uuid.NewString(),
		Query:     query,
		CreatedAt: start.UTC(),
	}
	log := s.logger.With(zap.String("query_id", bundle.ID))
	lower := strings.ToLower(query)

	log.Debug("advisor stage", zap.String("state", stateGatherContext))
	profile := ExtractProfile(query)
	bundle.Profile = profile

	log.Debug("advisor stage", zap.String("state", stateRetrieveKnowledge))
	sel := s.selector.Select(query)
	if len(sel.Misses) > 0 {
		log.Warn("knowledge misses", zap.Strings("keys", sel.Misses))
	}
	bundle.MatchedFactCount = len(sel.Facts)
	bundle.ConsultedKeys = sel.Keys

	log.Debug("advisor stage", zap.String("state", stateEnrich))
	marketCtx := s.marketContext(ctx, query, &bundle, log)
	en := s.enrich(lower, profile)
	bundle.RiskTableIncluded = en.riskTable
	bundle.ProjectionIncluded = en.projection

	log.Debug("advisor stage", zap.String("state", stateSynthesize))
	prompt := buildAdvisorPrompt(query, profile, marketCtx, knowledge.FormatForPrompt(sel.Facts), en.text)
	answer, attempts, err := s.generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrDisabled) {
			bundle.Notices = append(bundle.Notices, err.Error())
		}
		log.Warn("advisor stage",
			zap.String("state", stateFallback),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		bundle.UsedFallback = true
		bundle.AnswerText = buildFallbackAnswer(marketCtx, sel.Facts, en.text) + attributionFooter + "\n\n" + fallbackNote
	} else {
		log.Info("advisor stage",
			zap.String("state", stateSuccess),
			zap.Int("attempts", attempts),
		)
		bundle.AnswerText = answer + attributionFooter
	}

	log.Info("query answered",
		zap.Bool("used_fallback", bundle.UsedFallback),
		zap.Int("facts", bundle.MatchedFactCount),
		zap.Duration("elapsed", s.now().Sub(start)),
	)

	s.record(ctx, bundle, log)
	return bundle
}

// marketContext pide cotizaciones para los símbolos mencionados. Los fallos
// degradan en silencio salvo una capacidad deshabilitada, que se informa.
func (s *AdvisorService) marketContext(ctx context.Context, query string, bundle *domain.ResponseBundle, log *zap.Logger) string {
	symbols := market.DetectSymbols(query)
	if len(symbols) == 0 {
		return market.NoDataMessage
	}
	snap, err := s.market.Snapshot(ctx, symbols)
	if err != nil {
		log.Warn("market snapshot incomplete", zap.Strings("symbols", symbols), zap.Error(err))
		if errors.Is(err, market.ErrDisabled) {
			bundle.Notices = append(bundle.Notices, "market data unavailable: "+err.Error())
		}
	}
	return market.FormatSnapshot(snap)
}

// generate llama al modelo bajo la política de reintentos. Una respuesta con
// marcador de fallo cuenta como error; un cliente deshabilitado no se
// reintenta.
func (s *AdvisorService) generate(ctx context.Context, prompt string) (string, int, error) {
	var answer string
	res, err := s.retry.Do(ctx, func(actx context.Context) error {
		out, err := s.llmClient.Generate(actx, llm.Request{
			System:      advisorSystemPrompt,
			Prompt:      prompt,
			Temperature: s.temperature,
		})
		if err != nil {
			if errors.Is(err, llm.ErrDisabled) {
				return retry.Permanent(err)
			}
			if !llm.IsFailure(err) {
				err = fmt.Errorf("%w: %v", llm.ErrGeneric, err)
			}
			return err
		}
		out = cleanAnswer(out)
		if out == "" {
			return llm.ErrEmpty
		}
		if llm.ContainsFailureMarker(out) {
			return fmt.Errorf("%w: failure marker in response", llm.ErrGeneric)
		}
		answer = out
		return nil
	})
	return answer, res.Attempts, err
}

func (s *AdvisorService) record(ctx context.Context, bundle domain.ResponseBundle, log *zap.Logger) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, bundle); err != nil {
		log.Error("record query failed", zap.Error(err))
	}
}
