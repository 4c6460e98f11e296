package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"autovest/internal/app"
	"autovest/internal/config"
	"autovest/internal/llm"
)

const (
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

var suite = []string{
	"Should I invest in Bitcoin?",
	"Should I invest in Solana?",
	"I'm 28, how to plan for retirement?",
	"Bitcoin vs stocks - which is better?",
	"I have ₹1 lakh, where should I invest?",
	"What's a good portfolio for aggressive investors?",
	"How risky is cryptocurrency?",
	"I lost my job, what should I do with investments?",
}

func main() {
	offline := flag.Bool("offline", false, "no llama al modelo: mide sólo el camino determinístico")
	flag.Parse()

	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewNop()

	opts := app.Options{}
	if *offline {
		opts.LLMClient = &llm.MockClient{Err: llm.ErrDisabled}
	}
	advisor, err := app.NewAdvisor(ctx, cfg, logger, opts)
	if err != nil {
		log.Fatal(err)
	}
	defer advisor.Close()

	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("AutoVest Performance Benchmark Suite")
	fmt.Println(strings.Repeat("=", 70))

	results := make([]queryMetrics, 0, len(suite))
	for _, q := range suite {
		fmt.Printf("%s[Query]%s %s\n", colorCyan, colorReset, q)

		start := time.Now()
		bundle := advisor.Service.Answer(ctx, q)
		m := measure(bundle, time.Since(start))
		results = append(results, m)

		fmt.Printf("   Response Time: %dms\n", m.Latency.Milliseconds())
		fmt.Printf("   Length: %d chars (%d words)\n", m.Length, m.Words)
		fmt.Printf("   Completeness: %.0f%%\n", m.Completeness)
		fmt.Printf("   Features: Live Data=%s | Risk Score=%s | Comparison=%s | Actions=%s\n",
			mark(m.HasLiveData), mark(m.HasRiskScore), mark(m.HasComparison), mark(m.HasActionSteps))
		if m.UsedFallback {
			fmt.Printf("   %sfallback%s\n", colorYellow, colorReset)
		}
		fmt.Println()
	}

	s := summarize(results)
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("BENCHMARK RESULTS")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Average Response Time: %dms\n", s.AvgLatency.Milliseconds())
	fmt.Printf("Average Response Length: %.0f characters\n", s.AvgLength)
	fmt.Printf("Average Completeness: %.1f%%\n\n", s.AvgCompleteness)
	fmt.Println("Feature Usage Rates:")
	fmt.Printf("  - Live Market Data: %.0f%%\n", s.LiveDataRate)
	fmt.Printf("  - Risk Scoring: %.0f%%\n", s.RiskScoreRate)
	fmt.Printf("  - Comparisons: %.0f%%\n\n", s.ComparisonRate)
	fmt.Printf("Fallback responses: %d/%d\n", s.Fallbacks, len(results))
	fmt.Printf("%sOverall Quality:%s %s\n", colorGreen, colorReset, s.Quality)
	fmt.Printf("%sPerformance Rating:%s %s\n", colorGreen, colorReset, s.Speed)
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
