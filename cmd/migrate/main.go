package main

import (
	"flag"
	"log"
	"os"

	"github.com/example/ec-storefront/internal/config"
	"github.com/example/ec-storefront/internal/infrastructure/store"
	"github.com/example/ec-storefront/internal/migrate"
)

func main() {
	configPath := flag.String("config", os.Getenv("STOREFRONT_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Migrate] Invalid configuration: %v", err)
	}
	if cfg.Postgres.DSN == "" {
		log.Fatal("[Migrate] postgres.dsn is required")
	}

	db, err := store.ConnectPostgres(cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("[Migrate] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	if err := migrate.Apply(db); err != nil {
		log.Fatalf("[Migrate] %v", err)
	}
	log.Println("[Migrate] Schema is up to date")
}
