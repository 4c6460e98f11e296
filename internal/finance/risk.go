package finance

import (
	"fmt"
	"math"
	"strings"

	"autovest/internal/domain"
)

// Pesos del score compuesto. Suman 1.0.
const (
	WeightVolatility = 0.40
	WeightLiquidity  = 0.25
	WeightRegulatory = 0.20
	WeightAdoption   = 0.15
)

// RiskCategory agrupa el score en cuatro bandas.
type RiskCategory string

const (
	RiskLow      RiskCategory = "Low Risk"
	RiskModerate RiskCategory = "Moderate Risk"
	RiskHigh     RiskCategory = "High Risk"
	RiskVeryHigh RiskCategory = "Very High Risk"
)

var recommendations = map[RiskCategory]string{
	RiskLow:      "Suitable for conservative investors",
	RiskModerate: "Suitable for balanced portfolios",
	RiskHigh:     "Only for risk-tolerant investors",
	RiskVeryHigh: "Speculative - high potential but high danger",
}

// NeutralProfile se usa para activos desconocidos.
var NeutralProfile = domain.AssetRiskProfile{Volatility: 50, Liquidity: 50, RegulatoryClarity: 50, Adoption: 50}

// DefaultRiskProfiles es la tabla de factores por activo.
func DefaultRiskProfiles() map[string]domain.AssetRiskProfile {
	return map[string]domain.AssetRiskProfile{
		"Bitcoin":  {Volatility: 60, Liquidity: 85, RegulatoryClarity: 70, Adoption: 95},
		"Ethereum": {Volatility: 65, Liquidity: 80, RegulatoryClarity: 65, Adoption: 85},
		"Solana":   {Volatility: 70, Liquidity: 60, RegulatoryClarity: 50, Adoption: 70},
		"Cardano":  {Volatility: 65, Liquidity: 55, RegulatoryClarity: 55, Adoption: 60},
		"SP500":    {Volatility: 15, Liquidity: 95, RegulatoryClarity: 95, Adoption: 100},
		"Stocks":   {Volatility: 25, Liquidity: 80, RegulatoryClarity: 90, Adoption: 95},
		"Bonds":    {Volatility: 5, Liquidity: 90, RegulatoryClarity: 98, Adoption: 100},
	}
}

// RiskModel calcula scores a partir de una tabla inmutable de factores.
type RiskModel struct {
	profiles map[string]domain.AssetRiskProfile
}

// NewRiskModel copia la tabla recibida.
func NewRiskModel(profiles map[string]domain.AssetRiskProfile) *RiskModel {
	cp := make(map[string]domain.AssetRiskProfile, len(profiles))
	for k, v := range profiles {
		cp[k] = v
	}
	return &RiskModel{profiles: cp}
}

// NewDefaultRiskModel usa DefaultRiskProfiles.
func NewDefaultRiskModel() *RiskModel {
	return NewRiskModel(DefaultRiskProfiles())
}

// Profile devuelve los factores del activo o el perfil neutral.
func (m *RiskModel) Profile(asset string) domain.AssetRiskProfile {
	if p, ok := m.profiles[asset]; ok {
		return p
	}
	return NeutralProfile
}

// CompositeScore aplica los pesos sin redondear. Mayor es más riesgoso.
func CompositeScore(p domain.AssetRiskProfile) float64 {
	return p.Volatility*WeightVolatility +
		(100-p.Liquidity)*WeightLiquidity +
		(100-p.RegulatoryClarity)*WeightRegulatory +
		(100-p.Adoption)*WeightAdoption
}

// Categorize asigna banda y recomendación al score.
func Categorize(score float64) (RiskCategory, string) {
	var c RiskCategory
	switch {
	case score < 25:
		c = RiskLow
	case score < 50:
		c = RiskModerate
	case score < 70:
		c = RiskHigh
	default:
		c = RiskVeryHigh
	}
	return c, recommendations[c]
}

// Score calcula el score del activo redondeado a un decimal. La categoría
// se asigna sobre el valor sin redondear.
func (m *RiskModel) Score(asset string) domain.RiskScore {
	p := m.Profile(asset)
	raw := CompositeScore(p)
	category, rec := Categorize(raw)
	return domain.RiskScore{
		Asset:          asset,
		Value:          round1(raw),
		Category:       string(category),
		Recommendation: rec,
		Factors:        p,
	}
}

// Compare describe la diferencia de riesgo entre dos activos.
func (m *RiskModel) Compare(a, b string) string {
	ra, rb := m.Score(a), m.Score(b)

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Risk Comparison: %s vs %s**\n\n", a, b)
	fmt.Fprintf(&sb, "%s: %.1f/100 - %s\n", a, ra.Value, ra.Category)
	fmt.Fprintf(&sb, "%s: %.1f/100 - %s\n\n", b, rb.Value, rb.Category)

	diff := math.Abs(ra.Value - rb.Value)
	switch {
	case diff < 10:
		sb.WriteString("Both assets have a similar risk profile.")
	case ra.Value > rb.Value:
		fmt.Fprintf(&sb, "%s is %.1f points riskier than %s.", a, diff, b)
	default:
		fmt.Fprintf(&sb, "%s is %.1f points riskier than %s.", b, diff, a)
	}
	return sb.String()
}

// Explain detalla los factores que componen el score.
func Explain(s domain.RiskScore) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Risk Score: %.1f/100\n\n", s.Value)
	sb.WriteString("Contributing Factors:\n")
	fmt.Fprintf(&sb, "- Volatility: %.0f/100 (price swings)\n", s.Factors.Volatility)
	fmt.Fprintf(&sb, "- Liquidity: %.0f/100 (ease of buying/selling)\n", s.Factors.Liquidity)
	fmt.Fprintf(&sb, "- Regulatory Clarity: %.0f/100 (legal certainty)\n", s.Factors.RegulatoryClarity)
	fmt.Fprintf(&sb, "- Adoption: %.0f/100 (market acceptance)\n", s.Factors.Adoption)
	return sb.String()
}

// round1 redondea a un decimal; los empates van al par.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
