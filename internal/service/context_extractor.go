package service

import (
	"regexp"
	"strconv"
	"strings"

	"autovest/internal/domain"
)

const (
	minAge = 18
	maxAge = 99
)

var (
	// Dos dígitos seguidos de un sufijo opcional y de algo que no sea dígito.
	ageRe = regexp.MustCompile(`(?:i['’]?m|i am|age)\s+(\d{2})(?:\s*(?:years?|yrs?|y\.?o\.?)(?:\s+old)?)?(?:[^0-9]|$)`)

	// El orden importa: conservador gana sobre agresivo y éste sobre moderado.
	riskPatterns = []struct {
		tolerance domain.RiskTolerance
		re        *regexp.Regexp
	}{
		{domain.RiskConservative, regexp.MustCompile(`\b(conservative|low risk|safe approach|risk-averse)\b`)},
		{domain.RiskAggressive, regexp.MustCompile(`\b(aggressive|high risk|growth-focused|risk-seeking)\b`)},
		{domain.RiskModerate, regexp.MustCompile(`\b(moderate|balanced|medium risk)\b`)},
	}

	amountRe = regexp.MustCompile(`([₹$€])?\s*(\d+(?:,\d+)*(?:\.\d+)?)\s*(lakhs?|crores?|thousand|k)?\b`)

	unitMultipliers = map[string]float64{
		"lakh":     1e5,
		"lakhs":    1e5,
		"crore":    1e7,
		"crores":   1e7,
		"thousand": 1e3,
		"k":        1e3,
	}

	localeTokens = []string{"india", "inr", "₹", "rupee"}
)

// ExtractProfile infiere edad, tolerancia al riesgo, monto y ubicación de
// una consulta libre. Un campo que no se puede inferir con confianza queda
// ausente. Es pura y no falla.
func ExtractProfile(text string) domain.UserProfile {
	lower := strings.ToLower(text)
	var p domain.UserProfile

	if age, ok := extractAge(lower); ok {
		p.Age = &age
	}
	p.RiskTolerance = extractRiskTolerance(lower)
	if amount, ok := extractAmount(lower); ok {
		p.InvestmentAmount = &amount
	}
	for _, tok := range localeTokens {
		if strings.Contains(lower, tok) {
			p.Location = "India"
			p.Currency = "INR"
			break
		}
	}
	return p
}

func extractAge(lower string) (int, bool) {
	m := ageRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	age, err := strconv.Atoi(m[1])
	if err != nil || age < minAge || age > maxAge {
		return 0, false
	}
	return age, true
}

func extractRiskTolerance(lower string) domain.RiskTolerance {
	for _, rp := range riskPatterns {
		if rp.re.MatchString(lower) {
			return rp.tolerance
		}
	}
	return ""
}

// extractAmount toma sólo el primer número de la consulta.
func extractAmount(lower string) (float64, bool) {
	m := amountRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if mult, ok := unitMultipliers[m[3]]; ok {
		value *= mult
	}
	if value <= 0 {
		return 0, false
	}
	return value, true
}
