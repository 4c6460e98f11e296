package finance

import (
	"math"
	"strings"
	"testing"

	"autovest/internal/domain"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := WeightVolatility + WeightLiquidity + WeightRegulatory + WeightAdoption
	if math.Abs(sum-1.0) > 1e-12 {
		t.Fatalf("expected weights to sum to 1.0, got %v", sum)
	}
}

func TestUnknownAssetScoresFifty(t *testing.T) {
	m := NewDefaultRiskModel()
	s := m.Score("Dogecoin")
	if s.Value != 50.0 {
		t.Fatalf("expected 50.0 for unknown asset, got %v", s.Value)
	}
	if s.Category != string(RiskHigh) {
		t.Fatalf("expected %s, got %s", RiskHigh, s.Category)
	}
	if s.Factors != NeutralProfile {
		t.Fatalf("expected neutral factors, got %+v", s.Factors)
	}
}

func TestDefaultScores(t *testing.T) {
	m := NewDefaultRiskModel()
	cases := []struct {
		asset    string
		value    float64
		category RiskCategory
	}{
		{"Bitcoin", 34.5, RiskModerate},
		{"Ethereum", 40.2, RiskModerate},
		{"Solana", 52.5, RiskHigh},
		{"SP500", 8.2, RiskLow},
		{"Bonds", 4.9, RiskLow},
	}
	for _, tc := range cases {
		t.Run(tc.asset, func(t *testing.T) {
			s := m.Score(tc.asset)
			if s.Value != tc.value {
				t.Fatalf("expected %v, got %v", tc.value, s.Value)
			}
			if s.Category != string(tc.category) {
				t.Fatalf("expected %s, got %s", tc.category, s.Category)
			}
			if s.Recommendation == "" {
				t.Fatalf("expected recommendation")
			}
		})
	}
}

func TestScoreMonotonicity(t *testing.T) {
	base := domain.AssetRiskProfile{Volatility: 40, Liquidity: 40, RegulatoryClarity: 40, Adoption: 40}

	bump := []struct {
		name  string
		apply func(p *domain.AssetRiskProfile, v float64)
		up    bool
	}{
		{"volatilidad sube el score", func(p *domain.AssetRiskProfile, v float64) { p.Volatility = v }, true},
		{"liquidez baja el score", func(p *domain.AssetRiskProfile, v float64) { p.Liquidity = v }, false},
		{"claridad regulatoria baja el score", func(p *domain.AssetRiskProfile, v float64) { p.RegulatoryClarity = v }, false},
		{"adopcion baja el score", func(p *domain.AssetRiskProfile, v float64) { p.Adoption = v }, false},
	}

	for _, b := range bump {
		t.Run(b.name, func(t *testing.T) {
			prev := math.NaN()
			for v := 0.0; v <= 100; v++ {
				p := base
				b.apply(&p, v)
				m := NewRiskModel(map[string]domain.AssetRiskProfile{"X": p})
				got := m.Score("X").Value
				if !math.IsNaN(prev) {
					if b.up && got <= prev {
						t.Fatalf("at %v: expected increase, %v -> %v", v, prev, got)
					}
					if !b.up && got >= prev {
						t.Fatalf("at %v: expected decrease, %v -> %v", v, prev, got)
					}
				}
				prev = got
			}
		})
	}
}

func TestScoreRoundsHalfToEven(t *testing.T) {
	m := NewDefaultRiskModel()
	cases := []struct {
		asset string
		raw   float64
		value float64
	}{
		{"Ethereum", 40.25, 40.2},
		{"SP500", 8.25, 8.2},
		{"Cardano", 52.25, 52.2},
	}
	for _, tc := range cases {
		t.Run(tc.asset, func(t *testing.T) {
			if raw := CompositeScore(m.Profile(tc.asset)); raw != tc.raw {
				t.Fatalf("expected raw %v, got %v", tc.raw, raw)
			}
			if got := m.Score(tc.asset).Value; got != tc.value {
				t.Fatalf("expected %v, got %v", tc.value, got)
			}
		})
	}

	t.Run("empate hacia arriba cuando el par es mayor", func(t *testing.T) {
		if got := round1(0.75); got != 0.8 {
			t.Fatalf("expected 0.8, got %v", got)
		}
	})
}

func TestScoreCategorizesUnroundedValue(t *testing.T) {
	p := domain.AssetRiskProfile{Volatility: 62.4, Liquidity: 100, RegulatoryClarity: 100, Adoption: 100}
	m := NewRiskModel(map[string]domain.AssetRiskProfile{"Edge": p})

	s := m.Score("Edge")
	if s.Value != 25.0 {
		t.Fatalf("expected rounded value 25.0, got %v", s.Value)
	}
	if s.Category != string(RiskLow) {
		t.Fatalf("expected %s for raw score below 25, got %s", RiskLow, s.Category)
	}
}

func TestCategorizeThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  RiskCategory
	}{
		{0, RiskLow}, {24.9, RiskLow}, {25, RiskModerate}, {49.9, RiskModerate},
		{50, RiskHigh}, {69.9, RiskHigh}, {70, RiskVeryHigh}, {100, RiskVeryHigh},
	}
	for _, tc := range cases {
		if got, _ := Categorize(tc.score); got != tc.want {
			t.Fatalf("Categorize(%v)=%s want %s", tc.score, got, tc.want)
		}
	}
}

func TestCompare(t *testing.T) {
	m := NewDefaultRiskModel()

	t.Run("perfil similar", func(t *testing.T) {
		out := m.Compare("Bitcoin", "Ethereum")
		if !strings.Contains(out, "similar risk profile") {
			t.Fatalf("expected similar profile, got %q", out)
		}
	})

	t.Run("nombra al mas riesgoso", func(t *testing.T) {
		out := m.Compare("SP500", "Solana")
		if !strings.Contains(out, "Solana is 44.3 points riskier than SP500.") {
			t.Fatalf("unexpected comparison: %q", out)
		}
	})
}

func TestExplain(t *testing.T) {
	out := Explain(NewDefaultRiskModel().Score("Bitcoin"))
	for _, want := range []string{"34.5/100", "Volatility: 60/100", "Liquidity: 85/100", "Regulatory Clarity: 70/100", "Adoption: 95/100"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
