package bootstrap

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/wedding-seating/go-seating-backend/config"
	"github.com/wedding-seating/go-seating-backend/internal/storage"
	fsbackend "github.com/wedding-seating/go-seating-backend/internal/storage/firestore"
	pgbackend "github.com/wedding-seating/go-seating-backend/internal/storage/postgres"
)

// BuildProjectStore wires the durable backend and fallback cache from config.
// Backend init failure is never fatal: the store degrades to cache-only mode
// for the process lifetime.
func BuildProjectStore(ctx context.Context, cfg *config.Config) *storage.ProjectStore {
	var backend storage.Backend

	switch cfg.Storage.Driver {
	case "firestore":
		b, err := fsbackend.New(ctx, fsbackend.Options{
			GCPProject:      cfg.Storage.GCPProject,
			CredentialsPath: cfg.Storage.CredentialsPath,
			Collection:      cfg.Storage.Collection,
		})
		if err != nil {
			log.Printf("Firestore init failed; fallback to memory store: %v", err)
		} else {
			log.Println("Firestore enabled")
			backend = b
		}
	case "postgres":
		b, err := pgbackend.Open(ctx, cfg.Storage.DatabaseDSN)
		if err != nil {
			log.Printf("Postgres init failed; fallback to memory store: %v", err)
		} else {
			log.Println("Postgres enabled")
			backend = b
		}
	default:
		log.Println("Durable store disabled; using memory store")
	}

	var cache storage.Cache
	if cfg.Storage.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("Redis cache unavailable, using in-process cache: %v", err)
		} else {
			log.Println("Redis cache enabled")
			cache = storage.NewRedisCache(client)
		}
	}

	return storage.New(backend, cache)
}
