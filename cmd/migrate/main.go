package main

import (
	"context"
	"log"
	"time"

	"github.com/sir_venger/upload_lite/internal/config"
	"github.com/sir_venger/upload_lite/internal/repo/keys"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if !keys.IsPostgres(cfg.KeysSource) {
		log.Println("file keys source selected, skipping migrations")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := keys.ApplyMigrations(ctx, cfg.KeysSource); err != nil {
		log.Fatal(err)
	}

	log.Println("migrations applied")
}
