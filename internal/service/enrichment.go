package service

import (
	"strings"

	"autovest/internal/domain"
	"autovest/internal/finance"
)

var (
	portfolioWords = []string{"portfolio", "allocation", "mix", "diversify"}
	monthlyWords   = []string{"monthly", "per month", "/month"}
)

// enrichment es el análisis numérico derivado de la consulta y el perfil.
type enrichment struct {
	text       string
	riskTable  bool
	projection bool
}

// enrich agrega la matriz de riesgo cuando se pregunta por carteras y la
// proyección cuando hay un monto detectado.
func (s *AdvisorService) enrich(lowerQuery string, profile domain.UserProfile) enrichment {
	var (
		b   strings.Builder
		out enrichment
	)

	if containsAny(lowerQuery, portfolioWords) {
		b.WriteString(finance.RiskMatrixTable(s.risk, finance.MatrixAssetsFor(profile.RiskTolerance)))
		b.WriteString(finance.PortfolioComparison(profile.RiskTolerance))
		out.riskTable = true
	}

	if profile.InvestmentAmount != nil {
		monthly := monthlyContribution(lowerQuery, *profile.InvestmentAmount)
		p := finance.Project(monthly, finance.DefaultProjectionYears, finance.DefaultAnnualReturn)
		b.WriteString(finance.ProjectionSummary(p))
		if profile.Location == "India" {
			b.WriteString(finance.IndiaNote(monthly, s.currency))
		}
		out.projection = true
	}

	out.text = b.String()
	return out
}

// monthlyContribution trata el monto como mensual si la consulta lo dice;
// si no, lo reparte en doce meses.
func monthlyContribution(lowerQuery string, amount float64) float64 {
	if containsAny(lowerQuery, monthlyWords) {
		return amount
	}
	return amount / 12
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
