package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"autovest/internal/app"
	"autovest/internal/config"
	"autovest/internal/domain"
)

const (
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	advisor, err := app.NewAdvisor(ctx, cfg, logger, app.Options{WithQueryLog: true})
	if err != nil {
		log.Fatal(err)
	}
	defer advisor.Close()

	fmt.Println("===== AutoVest =====")
	fmt.Println("Escribe tu pregunta financiera. 'salir' para terminar.")

	for {
		fmt.Printf("%s> %s", colorCyan, colorReset)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "salir") || strings.EqualFold(query, "exit") {
			return
		}

		bundle := advisor.Service.Answer(ctx, query)
		printBundle(os.Stdout, bundle)
	}
}

func printBundle(w io.Writer, b domain.ResponseBundle) {
	for _, n := range b.Notices {
		fmt.Fprintf(w, "%s[aviso]%s %s\n", colorYellow, colorReset, n)
	}
	fmt.Fprintf(w, "%s[AutoVest]%s\n%s\n", colorGreen, colorReset, b.AnswerText)

	var tags []string
	if b.UsedFallback {
		tags = append(tags, "fallback")
	}
	if b.RiskTableIncluded {
		tags = append(tags, "risk-table")
	}
	if b.ProjectionIncluded {
		tags = append(tags, "projection")
	}
	fmt.Fprintf(w, "(hechos: %d", b.MatchedFactCount)
	if len(tags) > 0 {
		fmt.Fprintf(w, " | %s", strings.Join(tags, ", "))
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintln(w)
}
