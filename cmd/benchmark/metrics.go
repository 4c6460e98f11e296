package main

import (
	"strings"
	"time"

	"autovest/internal/domain"
)

// queryMetrics son las señales heurísticas medidas sobre una respuesta.
type queryMetrics struct {
	Query                 string
	Latency               time.Duration
	Length                int
	Words                 int
	UsedFallback          bool
	HasLiveData           bool
	HasRiskScore          bool
	HasCurrencyConversion bool
	HasComparison         bool
	HasRecommendation     bool
	HasActionSteps        bool
	Completeness          float64
}

func measure(b domain.ResponseBundle, latency time.Duration) queryMetrics {
	text := b.AnswerText
	lower := strings.ToLower(text)

	m := queryMetrics{
		Query:        b.Query,
		Latency:      latency,
		Length:       len([]rune(text)),
		Words:        len(strings.Fields(text)),
		UsedFallback: b.UsedFallback,
	}
	m.HasLiveData = containsAny(text, "$", "₹", "€", "%")
	m.HasRiskScore = strings.Contains(text, "Risk Score") || strings.Contains(text, "/100")
	m.HasCurrencyConversion = containsAny(text, "₹", "$", "€") && strings.Contains(text, "=")
	m.HasComparison = strings.Contains(text, "|") || strings.Contains(lower, "vs")
	m.HasRecommendation = strings.Contains(lower, "recommend") || strings.Contains(lower, "allocation")
	m.HasActionSteps = containsAny(text, "Step", "1.", "Action")

	features := []bool{m.HasLiveData, m.HasRiskScore, m.HasComparison, m.HasRecommendation, m.HasActionSteps}
	hits := 0
	for _, f := range features {
		if f {
			hits++
		}
	}
	m.Completeness = float64(hits) / float64(len(features)) * 100
	return m
}

// summary agrega las métricas de toda la suite.
type summary struct {
	AvgLatency      time.Duration
	AvgLength       float64
	AvgCompleteness float64
	LiveDataRate    float64
	RiskScoreRate   float64
	ComparisonRate  float64
	Fallbacks       int
	Quality         string
	Speed           string
}

func summarize(results []queryMetrics) summary {
	var s summary
	n := len(results)
	if n == 0 {
		s.Quality = qualityRating(0)
		s.Speed = speedRating(0)
		return s
	}

	var total time.Duration
	var length, completeness float64
	var live, risk, cmp int
	for _, r := range results {
		total += r.Latency
		length += float64(r.Length)
		completeness += r.Completeness
		if r.HasLiveData {
			live++
		}
		if r.HasRiskScore {
			risk++
		}
		if r.HasComparison {
			cmp++
		}
		if r.UsedFallback {
			s.Fallbacks++
		}
	}
	s.AvgLatency = total / time.Duration(n)
	s.AvgLength = length / float64(n)
	s.AvgCompleteness = completeness / float64(n)
	s.LiveDataRate = float64(live) / float64(n) * 100
	s.RiskScoreRate = float64(risk) / float64(n) * 100
	s.ComparisonRate = float64(cmp) / float64(n) * 100
	s.Quality = qualityRating(s.AvgCompleteness)
	s.Speed = speedRating(s.AvgLatency)
	return s
}

func qualityRating(completeness float64) string {
	switch {
	case completeness >= 80:
		return "EXCELLENT"
	case completeness >= 60:
		return "GOOD"
	default:
		return "NEEDS IMPROVEMENT"
	}
}

func speedRating(avg time.Duration) string {
	switch {
	case avg < 3*time.Second:
		return "FAST"
	case avg < 5*time.Second:
		return "ACCEPTABLE"
	default:
		return "SLOW"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
