package service

import (
	"fmt"
	"strings"

	"autovest/internal/domain"
	"autovest/internal/finance"
)

const advisorSystemPrompt = `You are AutoVest, an intelligent AI financial advisor. Your role is to:
- Provide personalized, data-driven investment advice
- Explain complex financial concepts in simple terms
- Use real market data and historical patterns to support recommendations
- Consider the user's age, risk tolerance, and investment amount
- Be honest about risks and never guarantee returns
- Give specific, actionable recommendations with numbers`

// attributionFooter se agrega al final de toda respuesta, con o sin modelo.
const attributionFooter = "\n\n---\n" +
	"**Data Sources:** Alpaca (stocks) | CoinGecko (crypto) | AutoVest knowledge base\n" +
	"**Intelligence:** Rule-based knowledge retrieval + risk, currency and projection models\n" +
	"**Historical Context:** Analysis based on 20+ years of market data and behavioral finance research"

var promptInstructions = []string{
	"Answer the question directly and clearly",
	"Use the market data and knowledge above to support your answer",
	"Include tables, risk scores or projections when they are provided",
	"Be specific with numbers and percentages",
	"Keep the response between 1500 and 2500 characters",
	"Write in a conversational, helpful tone",
}

// buildAdvisorPrompt arma el prompt de usuario. Las secciones vacías se omiten.
func buildAdvisorPrompt(query string, profile domain.UserProfile, marketCtx, knowledgeCtx, enrichment string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Question:** %s\n\n", strings.TrimSpace(query))

	if line := profileLine(profile); line != "" {
		fmt.Fprintf(&b, "**User Profile:** %s\n\n", line)
	}

	if marketCtx != "" {
		b.WriteString(marketCtx)
		b.WriteString("\n\n")
	}

	b.WriteString("**Knowledge:**\n")
	b.WriteString(knowledgeCtx)
	b.WriteString("\n\n")

	if enrichment = strings.TrimSpace(enrichment); enrichment != "" {
		b.WriteString("**Analysis:**\n")
		b.WriteString(enrichment)
		b.WriteString("\n\n")
	}

	b.WriteString("**Instructions:**\n")
	for _, ins := range promptInstructions {
		fmt.Fprintf(&b, "- %s\n", ins)
	}
	return b.String()
}

func profileLine(p domain.UserProfile) string {
	var parts []string
	if p.Age != nil {
		parts = append(parts, fmt.Sprintf("Age: %d", *p.Age))
	}
	if p.RiskTolerance != "" {
		parts = append(parts, fmt.Sprintf("Risk tolerance: %s", p.RiskTolerance))
	}
	if p.InvestmentAmount != nil {
		parts = append(parts, "Investment amount: ₹"+finance.FormatAmount(*p.InvestmentAmount))
	}
	if p.Location != "" {
		parts = append(parts, fmt.Sprintf("Location: %s", p.Location))
	}
	return strings.Join(parts, ", ")
}
