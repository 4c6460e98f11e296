package db

import (
	"testing"

	"autovest/internal/config"
)

func TestPoolConfig(t *testing.T) {
	t.Run("usa el maximo configurado", func(t *testing.T) {
		cfg := &config.Config{DatabaseURL: "postgres://u:p@localhost:5432/autovest", DBMaxConns: 8}
		pc, err := poolConfig(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pc.MaxConns != 8 {
			t.Fatalf("expected 8 conns, got %d", pc.MaxConns)
		}
		if pc.ConnConfig.RuntimeParams["application_name"] != "autovest" {
			t.Fatalf("expected application_name, got %v", pc.ConnConfig.RuntimeParams)
		}
	})

	t.Run("default sin configurar", func(t *testing.T) {
		pc, err := poolConfig(&config.Config{DatabaseURL: "postgres://u:p@localhost:5432/autovest"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pc.MaxConns != 5 {
			t.Fatalf("expected 5 conns, got %d", pc.MaxConns)
		}
	})

	t.Run("url invalida", func(t *testing.T) {
		if _, err := poolConfig(&config.Config{DatabaseURL: "postgres://%zz"}); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}
