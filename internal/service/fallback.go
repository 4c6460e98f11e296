package service

import (
	"fmt"
	"strings"

	"autovest/internal/domain"
)

const (
	fallbackRecommendation = "**Recommendation:**\nBased on the data above, consider your risk tolerance and investment timeline when making decisions. Diversification and long-term thinking typically lead to better outcomes."
	fallbackNote           = "*(Note: AI model experiencing delays - response generated from knowledge base + live data)*"
)

// buildFallbackAnswer arma la respuesta determinística sin modelo. El pie de
// atribución lo agrega el llamador.
func buildFallbackAnswer(marketCtx string, facts []domain.Fact, enrichment string) string {
	var b strings.Builder
	b.WriteString("**Financial Analysis**\n\n")

	if marketCtx != "" {
		b.WriteString(marketCtx)
		b.WriteString("\n\n")
	}

	b.WriteString("**Knowledge Insights:**\n")
	for i, f := range facts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f.Text)
	}

	if enrichment = strings.TrimSpace(enrichment); enrichment != "" {
		b.WriteString("\n")
		b.WriteString(enrichment)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fallbackRecommendation)
	return b.String()
}
