package finance

import (
	"fmt"
	"strings"

	"autovest/internal/domain"
)

// Activos de la matriz de riesgo según el perfil.
var (
	BalancedMatrixAssets   = []string{"US-Stocks", "Bonds", "REITs"}
	AggressiveMatrixAssets = []string{"US-Stocks", "International-Stocks", "REITs"}
)

// MatrixAssetsFor elige los activos de la matriz para una tolerancia.
func MatrixAssetsFor(t domain.RiskTolerance) []string {
	if t == domain.RiskAggressive {
		return AggressiveMatrixAssets
	}
	return BalancedMatrixAssets
}

// PortfolioStrategy describe una cartera modelo.
type PortfolioStrategy struct {
	Tolerance    domain.RiskTolerance
	Allocation   string
	AnnualReturn float64
	Volatility   float64
	RiskLevel    string
}

// PortfolioStrategies en orden de menor a mayor riesgo.
var PortfolioStrategies = []PortfolioStrategy{
	{Tolerance: domain.RiskConservative, Allocation: "20/70/10", AnnualReturn: 5.5, Volatility: 8, RiskLevel: "Low"},
	{Tolerance: domain.RiskModerate, Allocation: "60/30/10", AnnualReturn: 7.5, Volatility: 15, RiskLevel: "Moderate"},
	{Tolerance: domain.RiskAggressive, Allocation: "80/15/5", AnnualReturn: 9.2, Volatility: 22, RiskLevel: "High"},
}

// ReturnPotential traduce un score a potencial de retorno.
func ReturnPotential(score float64) string {
	switch {
	case score < 30:
		return "Low-Moderate"
	case score < 60:
		return "Moderate-High"
	default:
		return "Very High"
	}
}

func liquidityLabel(asset string) string {
	switch asset {
	case "Bitcoin", "Ethereum", "US-Stocks", "Bonds":
		return "High"
	case "Solana", "REITs":
		return "Medium"
	default:
		return "Variable"
	}
}

func keyInsight(asset string, s domain.RiskScore) string {
	lower := strings.ToLower(asset)
	switch {
	case strings.Contains(lower, "crypto") || asset == "Bitcoin" || asset == "Ethereum" || asset == "Solana":
		return "High volatility digital asset"
	case strings.Contains(lower, "stock"):
		return "Core growth driver"
	case asset == "Bonds":
		return "Stability cushion"
	case asset == "REITs":
		return "Inflation hedge"
	}
	if len(s.Recommendation) > 30 {
		return s.Recommendation[:30]
	}
	return s.Recommendation
}

// RiskMatrixTable arma la tabla markdown de riesgo para los activos dados.
func RiskMatrixTable(model *RiskModel, assets []string) string {
	var b strings.Builder
	b.WriteString("\n**Risk Matrix Analysis**\n\n")
	b.WriteString("| Asset Type | Risk Score | Return Potential | Liquidity | Key Insight |\n")
	b.WriteString("|------------|------------|------------------|-----------|-------------|\n")
	for _, asset := range assets {
		s := model.Score(asset)
		fmt.Fprintf(&b, "| %s | %.1f/100 %s | %s | %s | %s |\n",
			asset, s.Value, s.Category, ReturnPotential(s.Value), liquidityLabel(asset), keyInsight(asset, s))
	}
	return b.String()
}

// PortfolioComparison arma la tabla de estrategias marcando la del usuario.
// Sin tolerancia declarada se asume moderada.
func PortfolioComparison(t domain.RiskTolerance) string {
	if t == "" {
		t = domain.RiskModerate
	}

	var b strings.Builder
	b.WriteString("\n**Portfolio Strategy Comparison**\n\n")
	b.WriteString("| Strategy | Allocation (Stock/Bond/Alt) | Expected Return | Volatility | Risk Level |\n")
	b.WriteString("|----------|----------------------------|-----------------|------------|------------|\n")

	var mine PortfolioStrategy
	for _, p := range PortfolioStrategies {
		marker := ""
		if p.Tolerance == t {
			marker = " ✅"
			mine = p
		}
		fmt.Fprintf(&b, "| %s%s | %s | ~%.1f%% annually | ~%.0f%% | %s |\n",
			titleCase(string(p.Tolerance)), marker, p.Allocation, p.AnnualReturn, p.Volatility, p.RiskLevel)
	}

	fmt.Fprintf(&b, "\n**Your %s Portfolio** targets ~%.1f%% annual returns.\n", titleCase(string(t)), mine.AnnualReturn)
	if t == domain.RiskModerate {
		b.WriteString("If you shifted to **Aggressive (80/15/5)**, expected return could rise to ~9.2% but drawdowns might increase 50% during bear markets.\n")
	}
	return b.String()
}

// ProjectionSummary presenta la proyección en lakhs.
func ProjectionSummary(p domain.WealthProjectionResult) string {
	var b strings.Builder
	b.WriteString("\n**Wealth Projection Scenario**\n\n")
	b.WriteString(printer.Sprintf("If you invest **₹%.0f/month** for **%d years**:\n\n", p.MonthlyAmount, p.Years))
	b.WriteString(printer.Sprintf("- Total Amount Invested: **₹%.1fL**\n", p.TotalInvested/1e5))
	b.WriteString(printer.Sprintf("- Projected Portfolio Value: **₹%.1fL**\n", p.ProjectedValue/1e5))
	growth := 0.0
	if p.TotalInvested > 0 {
		growth = (p.ProjectedValue/p.TotalInvested - 1) * 100
	}
	b.WriteString(printer.Sprintf("- Total Gains: **₹%.1fL** (%.0f%% growth)\n", p.TotalGain/1e5, growth))
	fmt.Fprintf(&b, "- Assumed Annual Return: **%.1f%%**\n\n", p.AnnualRatePercent)

	if len(p.Milestones) > 0 {
		b.WriteString("**Milestone Timeline:**\n")
		for _, m := range p.Milestones {
			b.WriteString(printer.Sprintf("  - Year %d: ₹%.1fL\n", m.Year, m.Value/1e5))
		}
	}
	return b.String()
}

// IndiaNote personaliza la proyección para usuarios en India.
func IndiaNote(monthly float64, c *CurrencyConverter) string {
	var b strings.Builder
	b.WriteString("\n**Personalized for India:**\n")
	fmt.Fprintf(&b, "At your investment level of %s/month, you're building serious wealth. ", c.FormatMultiCurrency(monthly))
	b.WriteString("Consider tax-saving options like ELSS funds (80C benefits) and PPF for additional security.\n")
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
