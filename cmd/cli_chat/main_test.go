package main

import (
	"bytes"
	"strings"
	"testing"

	"autovest/internal/domain"
)

func TestPrintBundle(t *testing.T) {
	t.Run("con avisos y etiquetas", func(t *testing.T) {
		var buf bytes.Buffer
		printBundle(&buf, domain.ResponseBundle{
			AnswerText:         "Diversify.",
			Notices:            []string{"LLM disabled: LLM_API_KEY not set"},
			MatchedFactCount:   4,
			UsedFallback:       true,
			ProjectionIncluded: true,
		})
		out := buf.String()
		for _, want := range []string{
			"[aviso]" + colorReset + " LLM disabled: LLM_API_KEY not set",
			"Diversify.",
			"(hechos: 4 | fallback, projection)",
		} {
			if !strings.Contains(out, want) {
				t.Fatalf("expected %q in %q", want, out)
			}
		}
	})

	t.Run("sin etiquetas", func(t *testing.T) {
		var buf bytes.Buffer
		printBundle(&buf, domain.ResponseBundle{AnswerText: "ok", MatchedFactCount: 2})
		if !strings.Contains(buf.String(), "(hechos: 2)\n") {
			t.Fatalf("unexpected output %q", buf.String())
		}
		if strings.Contains(buf.String(), "[aviso]") {
			t.Fatalf("expected no notices, got %q", buf.String())
		}
	})
}
