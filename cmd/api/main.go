package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"autovest/internal/app"
	"autovest/internal/config"
	apihttp "autovest/internal/http"
	"autovest/internal/service"
)

func main() {
	issueToken := flag.String("issue-token", "", "emite un access token para el client id dado y termina")
	flag.Parse()

	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	if *issueToken != "" {
		token, err := jwtSvc.IssueAccessToken(*issueToken)
		if err != nil {
			logger.Fatal("issue token", zap.Error(err))
		}
		fmt.Println(token)
		return
	}
	if !jwtSvc.Enabled() {
		logger.Warn("jwt secret not configured, query routes are open")
	}

	advisor, err := app.NewAdvisor(ctx, cfg, logger, app.Options{WithQueryLog: true})
	if err != nil {
		logger.Fatal("advisor init", zap.Error(err))
	}
	defer advisor.Close()

	var logs apihttp.QueryLister
	if advisor.QueryLog != nil {
		logs = advisor.QueryLog
	}
	queryHandler := apihttp.NewQueryHandler(logger, advisor.Service, logs)
	router := apihttp.NewRouter(logger, queryHandler, jwtSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
