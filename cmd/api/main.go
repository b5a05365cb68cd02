package main

import (
	"context"
	"log"

	"github.com/wedding-seating/go-seating-backend/config"
	"github.com/wedding-seating/go-seating-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	store := bootstrap.BuildProjectStore(context.Background(), cfg)
	defer store.Close()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Store:       store,
		CORSOrigins: cfg.Server.CORSOrigins,
		StaticDir:   cfg.Server.StaticDir,
	})

	log.Printf("Wedding Seating app listening on http://localhost:%s (storage=%s)", cfg.Server.Port, store.Mode())
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
