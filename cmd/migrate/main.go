package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"autovest/internal/db"
)

func main() {
	var databaseURL string
	var command string

	flag.StringVar(&databaseURL, "database", "", "URL de la base (por defecto DATABASE_URL)")
	flag.StringVar(&command, "command", "up", "up, down o version")
	flag.Parse()

	_ = godotenv.Load()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		log.Fatal("database URL is required: use -database or DATABASE_URL")
	}

	switch command {
	case "up":
		if err := db.Migrate(databaseURL); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		log.Println("migrations applied")
	case "down":
		if err := db.MigrateDown(databaseURL); err != nil {
			log.Fatalf("migrate down: %v", err)
		}
		log.Println("migrations rolled back")
	case "version":
		version, dirty, err := db.MigrationVersion(databaseURL)
		if err != nil {
			log.Fatalf("migrate version: %v", err)
		}
		log.Printf("current version: %d (dirty: %v)", version, dirty)
	default:
		log.Fatalf("unknown command %q (use: up, down, version)", command)
	}
}
