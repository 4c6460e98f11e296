package knowledge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
)

// QueryVar es la variable CEL con la consulta en minúsculas.
const QueryVar = "q"

// Trigger asocia una condición sobre la consulta con las claves a consultar.
// Expr es una expresión CEL booleana sobre q. Una clave terminada en ":*"
// representa la categoría completa.
type Trigger struct {
	Name string
	Expr string
	Keys []string

	program cel.Program
}

// NewTriggerEnv crea el entorno CEL con la variable q declarada.
func NewTriggerEnv() (*cel.Env, error) {
	return cel.NewEnv(cel.Variable(QueryVar, cel.StringType))
}

// Compile prepara el programa CEL del trigger.
func (t *Trigger) Compile(env *cel.Env) error {
	ast, issues := env.Compile(t.Expr)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("compile trigger %s: %w", t.Name, issues.Err())
	}
	prog, err := env.Program(ast, cel.CostLimit(100000))
	if err != nil {
		return fmt.Errorf("program trigger %s: %w", t.Name, err)
	}
	t.program = prog
	return nil
}

// Matches evalúa el trigger contra una consulta ya normalizada a minúsculas.
func (t *Trigger) Matches(lowerQuery string) (bool, error) {
	if t.program == nil {
		return false, fmt.Errorf("trigger %s is not compiled", t.Name)
	}
	out, _, err := t.program.Eval(map[string]any{QueryVar: lowerQuery})
	if err != nil {
		return false, fmt.Errorf("eval trigger %s: %w", t.Name, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("trigger %s: non-boolean result %T", t.Name, out.Value())
	}
	return matched, nil
}

// anyOf genera "alguna de las palabras aparece en q".
func anyOf(words ...string) string {
	if len(words) == 1 {
		return fmt.Sprintf("%s.contains(%s)", QueryVar, strconv.Quote(words[0]))
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strconv.Quote(w)
	}
	return fmt.Sprintf("[%s].exists(w, %s.contains(w))", strings.Join(quoted, ", "), QueryVar)
}

func all(exprs ...string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = "(" + e + ")"
	}
	return strings.Join(parts, " && ")
}

func not(expr string) string { return "!(" + expr + ")" }

// DefaultTriggers devuelve la tabla de triggers en su orden de evaluación.
// El orden de declaración define el orden de los hechos en la salida.
func DefaultTriggers() []Trigger {
	age20 := anyOf("20s", "twenties", "25", "28")
	age30 := anyOf("30s", "thirties", "35")
	age40 := anyOf("40s", "forties", "45")
	age50 := anyOf("50s", "fifties", "55")

	comparing := anyOf("vs", "versus", "compare")
	bitcoinVsStocks := all(anyOf("bitcoin"), anyOf("stock", "s&p"))

	risk := anyOf("risk")
	lowRisk := anyOf("low", "conservative", "safe")
	highRisk := anyOf("high", "aggressive")

	riskScore := anyOf("risk score", "how risky")

	return []Trigger{
		{Name: "principles", Expr: anyOf("how", "why", "should", "principle", "strategy"),
			Keys: []string{"investment-principle:*"}},

		{Name: "bitcoin", Expr: anyOf("bitcoin", "btc"),
			Keys: []string{"crypto-feature:Bitcoin", "volatility:Bitcoin", "expected-return:Bitcoin"}},
		{Name: "ethereum", Expr: anyOf("ethereum", "eth"),
			Keys: []string{"crypto-feature:Ethereum", "volatility:Ethereum", "expected-return:Ethereum"}},
		{Name: "solana", Expr: anyOf("solana", "sol"),
			Keys: []string{"crypto-feature:Solana", "volatility:Solana", "expected-return:Solana"}},
		{Name: "stocks", Expr: anyOf("stock", "index", "s&p", "spy"),
			Keys: []string{"asset-class:stocks", "asset-class:index-funds", "volatility:SP500", "expected-return:SP500"}},

		{Name: "age-20s", Expr: age20, Keys: []string{"age-strategy:20s"}},
		{Name: "age-30s", Expr: all(not(age20), age30), Keys: []string{"age-strategy:30s"}},
		{Name: "age-40s", Expr: all(not(age20), not(age30), age40), Keys: []string{"age-strategy:40s"}},
		{Name: "age-50s", Expr: all(not(age20), not(age30), not(age40), age50), Keys: []string{"age-strategy:50s"}},

		{Name: "compare-bitcoin-sp500", Expr: all(comparing, bitcoinVsStocks),
			Keys: []string{"compare-assets:Bitcoin-SP500"}},
		{Name: "compare-crypto-stocks", Expr: all(comparing, not(bitcoinVsStocks), anyOf("crypto"), anyOf("stock")),
			Keys: []string{"compare-assets:Crypto-Stocks"}},

		{Name: "risk-conservative", Expr: all(risk, lowRisk), Keys: []string{"risk-level:conservative"}},
		{Name: "risk-aggressive", Expr: all(risk, not(lowRisk), highRisk), Keys: []string{"risk-level:aggressive"}},
		{Name: "risk-moderate", Expr: all(risk, not(lowRisk), not(highRisk)), Keys: []string{"risk-level:moderate"}},

		{Name: "retirement", Expr: anyOf("retire", "retirement"),
			Keys: []string{"retirement-rule:four-percent", "retirement-corpus-needed:monthly-expense"}},

		{Name: "risk-score-bitcoin", Expr: all(riskScore, anyOf("bitcoin")), Keys: []string{"comprehensive-risk:Bitcoin"}},
		{Name: "risk-score-ethereum", Expr: all(riskScore, anyOf("ethereum")), Keys: []string{"comprehensive-risk:Ethereum"}},
		{Name: "risk-score-solana", Expr: all(riskScore, anyOf("solana")), Keys: []string{"comprehensive-risk:Solana"}},
		{Name: "risk-score-sp500", Expr: all(riskScore, anyOf("sp500")), Keys: []string{"comprehensive-risk:SP500"}},

		{Name: "currency", Expr: anyOf("rupee", "₹", "inr", "dollar", "$", "euro", "€"),
			Keys: []string{"conversion-rate:USD-INR", "conversion-rate:EUR-INR"}},

		{Name: "market-timing", Expr: anyOf("bull market", "bear market", "market crash", "timing"),
			Keys: []string{"market-timing-rule:bull-market", "market-timing-rule:bear-market", "market-timing-rule:sideways-market"}},

		{Name: "behavioral", Expr: anyOf("fomo", "panic", "emotion", "psychology", "behavior"),
			Keys: []string{"behavioral-bias:loss-aversion", "behavioral-bias:recency-bias", "behavioral-bias:herd-mentality", "behavioral-bias:confirmation-bias"}},

		{Name: "rebalancing", Expr: anyOf("rebalanc", "adjust portfolio"),
			Keys: []string{"rebalancing-trigger:deviation", "rebalancing-frequency:quarterly", "rebalancing-benefit:risk-control"}},

		{Name: "tax", Expr: anyOf("tax"),
			Keys: []string{"tax-strategy:long-term-holdings", "tax-strategy:tax-loss-harvesting", "tax-strategy:retirement-accounts"}},

		{Name: "emergency", Expr: anyOf("emergency", "job loss", "crisis", "crash"),
			Keys: []string{"emergency-scenario:job-loss", "emergency-scenario:market-crash", "emergency-scenario:medical-emergency"}},

		{Name: "milestones", Expr: anyOf("milestone", "first", "10k", "lakh", "crore", "achievement"),
			Keys: []string{"milestone:first-10k", "milestone:first-lakh", "milestone:first-10-lakhs", "milestone:first-crore"}},
	}
}
