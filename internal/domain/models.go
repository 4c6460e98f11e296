package domain

import "time"

// RiskTolerance es la tolerancia al riesgo declarada por el usuario.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// UserProfile es el contexto inferido de una única consulta. No se persiste.
// Los campos ausentes se expresan con punteros nil o strings vacíos.
type UserProfile struct {
	Age              *int          `json:"age,omitempty"`
	RiskTolerance    RiskTolerance `json:"risk_tolerance,omitempty"`
	InvestmentAmount *float64      `json:"investment_amount,omitempty"`
	Location         string        `json:"location,omitempty"`
	Currency         string        `json:"currency,omitempty"`
}

// IsEmpty indica si no se detectó ningún campo.
func (p UserProfile) IsEmpty() bool {
	return p.Age == nil && p.RiskTolerance == "" && p.InvestmentAmount == nil && p.Location == ""
}

// Fact es una afirmación del almacén de conocimiento.
// Key = Category + ":" + Subject.
type Fact struct {
	Key      string `json:"key"`
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Text     string `json:"text"`
}

// AssetRiskProfile guarda los cuatro factores de riesgo (0-100) de un activo.
type AssetRiskProfile struct {
	Volatility        float64 `json:"volatility"`
	Liquidity         float64 `json:"liquidity"`
	RegulatoryClarity float64 `json:"regulatory_clarity"`
	Adoption          float64 `json:"adoption"`
}

// RiskScore es el resultado del modelo de riesgo para un activo.
type RiskScore struct {
	Asset          string           `json:"asset"`
	Value          float64          `json:"value"`
	Category       string           `json:"category"`
	Recommendation string           `json:"recommendation"`
	Factors        AssetRiskProfile `json:"factors"`
}

// CurrencyPair identifica una conversión dirigida.
type CurrencyPair struct {
	From string
	To   string
}

// Milestone es el valor proyectado al cierre de un año.
type Milestone struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// WealthProjectionResult describe una proyección de aportes mensuales.
type WealthProjectionResult struct {
	MonthlyAmount     float64     `json:"monthly_amount"`
	Years             int         `json:"years"`
	AnnualRatePercent float64     `json:"annual_rate_percent"`
	TotalInvested     float64     `json:"total_invested"`
	ProjectedValue    float64     `json:"projected_value"`
	TotalGain         float64     `json:"total_gain"`
	Milestones        []Milestone `json:"milestones"`
}

// ResponseBundle es el resultado inmutable de procesar una consulta.
type ResponseBundle struct {
	ID                 string      `json:"id"`
	Query              string      `json:"query"`
	AnswerText         string      `json:"answer"`
	UsedFallback       bool        `json:"used_fallback"`
	MatchedFactCount   int         `json:"matched_fact_count"`
	RiskTableIncluded  bool        `json:"risk_table_included"`
	ProjectionIncluded bool        `json:"projection_included"`
	Profile            UserProfile `json:"profile"`
	ConsultedKeys      []string    `json:"consulted_keys"`
	Notices            []string    `json:"notices,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}

// QueryLog es la fila persistida por cada consulta respondida.
type QueryLog struct {
	ID                 string    `json:"id"`
	Query              string    `json:"query"`
	Answer             string    `json:"answer"`
	UsedFallback       bool      `json:"used_fallback"`
	MatchedFactCount   int       `json:"matched_fact_count"`
	RiskTableIncluded  bool      `json:"risk_table_included"`
	ProjectionIncluded bool      `json:"projection_included"`
	Subject            string    `json:"subject,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewQueryLog arma la fila a persistir a partir de un bundle.
func NewQueryLog(b ResponseBundle, subject string) QueryLog {
	return QueryLog{
		ID:                 b.ID,
		Query:              b.Query,
		Answer:             b.AnswerText,
		UsedFallback:       b.UsedFallback,
		MatchedFactCount:   b.MatchedFactCount,
		RiskTableIncluded:  b.RiskTableIncluded,
		ProjectionIncluded: b.ProjectionIncluded,
		Subject:            subject,
		CreatedAt:          b.CreatedAt,
	}
}
