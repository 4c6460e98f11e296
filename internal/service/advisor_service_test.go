package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"autovest/internal/domain"
	"autovest/internal/knowledge"
	"autovest/internal/llm"
	"autovest/internal/market"
	"autovest/internal/retry"
)

type stubSnapshotProvider struct {
	snap  domain.MarketSnapshot
	err   error
	asked []string
}

func (s *stubSnapshotProvider) Snapshot(_ context.Context, tickers []string) (domain.MarketSnapshot, error) {
	s.asked = tickers
	return s.snap, s.err
}

type stubRecorder struct {
	got []domain.ResponseBundle
	err error
}

func (r *stubRecorder) Record(_ context.Context, b domain.ResponseBundle) error {
	r.got = append(r.got, b)
	return r.err
}

func newTestAdvisor(t *testing.T, client llm.Client, mp market.SnapshotProvider) *AdvisorService {
	t.Helper()
	store, err := knowledge.NewDefaultStore()
	if err != nil {
		t.Fatalf("default store: %v", err)
	}
	sel, err := knowledge.NewSelector(store, zap.NewNop())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	// Step cero: los reintentos no esperan.
	policy := retry.Policy{MaxAttempts: 3}
	return NewAdvisorService(sel, nil, nil, mp, client, policy, 0.5, zap.NewNop())
}

func TestAdvisorAnswer_FallbackOnLLMFailure(t *testing.T) {
	client := &llm.MockClient{Err: llm.ErrAPI}
	svc := newTestAdvisor(t, client, &stubSnapshotProvider{})

	b := svc.Answer(context.Background(), "Should I invest in Bitcoin?")

	if !b.UsedFallback {
		t.Fatalf("expected fallback")
	}
	if client.Calls() != 3 {
		t.Fatalf("expected 3 attempts, got %d", client.Calls())
	}
	if !strings.Contains(b.AnswerText, "60") || !strings.Contains(b.AnswerText, "35") {
		t.Fatalf("expected bitcoin volatility and return in fallback, got %q", b.AnswerText)
	}
	if b.RiskTableIncluded || b.ProjectionIncluded {
		t.Fatalf("expected no enrichment, got risk=%v projection=%v", b.RiskTableIncluded, b.ProjectionIncluded)
	}
	if !strings.HasPrefix(b.AnswerText, "**Financial Analysis**") {
		t.Fatalf("unexpected fallback heading: %q", b.AnswerText)
	}
	if !strings.Contains(b.AnswerText, attributionFooter) || !strings.HasSuffix(b.AnswerText, fallbackNote) {
		t.Fatalf("expected footer and degraded note")
	}
	if b.ID == "" || b.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at")
	}
}

func TestAdvisorAnswer_Success(t *testing.T) {
	client := &llm.MockClient{Response: "```markdown\nBitcoin is volatile.\n```"}
	svc := newTestAdvisor(t, client, &stubSnapshotProvider{})

	b := svc.Answer(context.Background(), "Should I invest in Bitcoin?")

	if b.UsedFallback {
		t.Fatalf("expected model answer")
	}
	if b.AnswerText != "Bitcoin is volatile."+attributionFooter {
		t.Fatalf("unexpected answer %q", b.AnswerText)
	}
	req := client.LastRequest()
	if req.System != advisorSystemPrompt || req.Temperature != 0.5 {
		t.Fatalf("unexpected request %+v", req)
	}
	if !strings.Contains(req.Prompt, "**Question:** Should I invest in Bitcoin?") {
		t.Fatalf("prompt missing question: %q", req.Prompt)
	}
	if !strings.Contains(req.Prompt, "Bitcoin annualized volatility: 60%.") {
		t.Fatalf("prompt missing knowledge: %q", req.Prompt)
	}
	if b.MatchedFactCount == 0 || len(b.ConsultedKeys) == 0 {
		t.Fatalf("expected consulted facts")
	}
}

func TestAdvisorAnswer_RetryThenSuccess(t *testing.T) {
	client := &llm.MockClient{Replies: []llm.MockReply{
		{Err: llm.ErrTimeout},
		{Response: "Diversify across assets."},
	}}
	svc := newTestAdvisor(t, client, &stubSnapshotProvider{})

	b := svc.Answer(context.Background(), "what is compounding?")
	if b.UsedFallback {
		t.Fatalf("expected success after retry")
	}
	if client.Calls() != 2 {
		t.Fatalf("expected 2 attempts, got %d", client.Calls())
	}
}

func TestAdvisorAnswer_FailureMarkerTriggersFallback(t *testing.T) {
	client := &llm.MockClient{Response: "Sorry, LLM timeout while generating"}
	svc := newTestAdvisor(t, client, &stubSnapshotProvider{})

	b := svc.Answer(context.Background(), "Should I invest in Bitcoin?")
	if !b.UsedFallback {
		t.Fatalf("expected fallback on marker text")
	}
	if client.Calls() != 3 {
		t.Fatalf("expected marker responses to be retried, got %d calls", client.Calls())
	}
}

func TestAdvisorAnswer_DisabledCapabilities(t *testing.T) {
	svc := newTestAdvisor(t, llm.NewDisabledClient("LLM_API_KEY not set"), market.NewDisabledProvider("no market keys"))

	b := svc.Answer(context.Background(), "Should I invest in Bitcoin?")
	if !b.UsedFallback {
		t.Fatalf("expected fallback with disabled model")
	}
	if len(b.Notices) != 2 {
		t.Fatalf("expected two notices, got %v", b.Notices)
	}
	if !strings.Contains(b.Notices[0], "market data unavailable") || !strings.Contains(b.Notices[1], "LLM_API_KEY not set") {
		t.Fatalf("unexpected notices %v", b.Notices)
	}
	if !strings.Contains(b.AnswerText, market.NoDataMessage) {
		t.Fatalf("expected no-data market block in fallback")
	}
}

func TestAdvisorAnswer_Retirement(t *testing.T) {
	svc := newTestAdvisor(t, &llm.MockClient{Err: llm.ErrGeneric}, &stubSnapshotProvider{})

	b := svc.Answer(context.Background(), "I'm 28, how should I plan for retirement?")
	if b.Profile.Age == nil || *b.Profile.Age != 28 {
		t.Fatalf("expected age 28, got %v", b.Profile.Age)
	}
	keys := strings.Join(b.ConsultedKeys, ",")
	for _, want := range []string{"retirement-rule:four-percent", "retirement-corpus-needed:monthly-expense"} {
		if !strings.Contains(keys, want) {
			t.Fatalf("expected key %s in %v", want, b.ConsultedKeys)
		}
	}
	if !strings.Contains(b.AnswerText, "Withdraw 4% annually") {
		t.Fatalf("expected four-percent fact in fallback")
	}
}

func TestAdvisorAnswer_Enrichment(t *testing.T) {
	client := &llm.MockClient{Err: llm.ErrAPI}
	svc := newTestAdvisor(t, client, &stubSnapshotProvider{})

	b := svc.Answer(context.Background(), "I put ₹5000 per month, suggest a balanced portfolio mix")
	if !b.RiskTableIncluded || !b.ProjectionIncluded {
		t.Fatalf("expected both enrichments, got risk=%v projection=%v", b.RiskTableIncluded, b.ProjectionIncluded)
	}
	for _, want := range []string{
		"Risk Matrix Analysis",
		"| Bonds |",
		"Portfolio Strategy Comparison",
		"| Moderate ✅ |",
		"₹5,000/month",
		"Personalized for India",
	} {
		if !strings.Contains(b.AnswerText, want) {
			t.Fatalf("expected %q in fallback, got %q", want, b.AnswerText)
		}
	}
	if !strings.Contains(client.LastRequest().Prompt, "Wealth Projection Scenario") {
		t.Fatalf("expected enrichment in prompt")
	}
}

func TestAdvisorAnswer_LumpSumSpreadMonthly(t *testing.T) {
	svc := newTestAdvisor(t, &llm.MockClient{Err: llm.ErrAPI}, &stubSnapshotProvider{})

	b := svc.Answer(context.Background(), "I have 120000 to invest")
	if !b.ProjectionIncluded {
		t.Fatalf("expected projection")
	}
	if !strings.Contains(b.AnswerText, "₹10,000/month") {
		t.Fatalf("expected lump sum spread over 12 months, got %q", b.AnswerText)
	}
}

func TestAdvisorAnswer_MarketSnapshot(t *testing.T) {
	mp := &stubSnapshotProvider{snap: domain.MarketSnapshot{Quotes: []domain.MarketQuote{
		{Symbol: "BTC", Name: "Bitcoin", Kind: domain.AssetCrypto, Price: decimal.NewFromInt(67000), PercentChange: 2},
	}}}
	client := &llm.MockClient{Response: "ok"}
	svc := newTestAdvisor(t, client, mp)

	b := svc.Answer(context.Background(), "Is bitcoin a buy?")
	if len(mp.asked) != 1 || mp.asked[0] != "BTC" {
		t.Fatalf("expected BTC snapshot request, got %v", mp.asked)
	}
	if !strings.Contains(client.LastRequest().Prompt, "Bitcoin: $67,000 (+2.0% 24h)") {
		t.Fatalf("expected market block in prompt")
	}
	if len(b.Notices) != 0 {
		t.Fatalf("expected no notices, got %v", b.Notices)
	}
}

func TestAdvisorAnswer_PartialMarketFailureIsSilent(t *testing.T) {
	mp := &stubSnapshotProvider{err: market.ErrNoData}
	svc := newTestAdvisor(t, &llm.MockClient{Response: "ok"}, mp)

	b := svc.Answer(context.Background(), "apple stock?")
	if len(b.Notices) != 0 {
		t.Fatalf("expected no notice for transient market failure, got %v", b.Notices)
	}
}

func TestAdvisorAnswer_Recorder(t *testing.T) {
	t.Run("registra el bundle", func(t *testing.T) {
		rec := &stubRecorder{}
		svc := newTestAdvisor(t, &llm.MockClient{Response: "ok"}, &stubSnapshotProvider{}).WithRecorder(rec)

		b := svc.Answer(context.Background(), "what is diversification?")
		if len(rec.got) != 1 || rec.got[0].ID != b.ID {
			t.Fatalf("expected bundle recorded, got %+v", rec.got)
		}
	})

	t.Run("error del recorder no afecta", func(t *testing.T) {
		rec := &stubRecorder{err: errors.New("db down")}
		svc := newTestAdvisor(t, &llm.MockClient{Response: "ok"}, &stubSnapshotProvider{}).WithRecorder(rec)

		b := svc.Answer(context.Background(), "what is diversification?")
		if b.UsedFallback || b.AnswerText != "ok"+attributionFooter {
			t.Fatalf("expected normal bundle, got %+v", b)
		}
	})
}

func TestAdvisorGenerate_ClassifiesUnknownErrors(t *testing.T) {
	client := &llm.MockClient{Err: errors.New("connection reset by peer")}
	svc := newTestAdvisor(t, client, &stubSnapshotProvider{})

	_, attempts, err := svc.generate(context.Background(), "prompt")
	if !errors.Is(err, llm.ErrGeneric) {
		t.Fatalf("expected ErrGeneric, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}
