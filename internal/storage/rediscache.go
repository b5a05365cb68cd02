package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
)

const (
	projectKeyPrefix = "seating:project:" // JSON project document: seating:project:{project_id}
	projectTTL       = 30 * 24 * time.Hour
)

// RedisCache mirrors project documents into Redis so the fallback cache
// survives process restarts. It keeps the Cache contract of never failing:
// Redis errors are logged and degrade to a miss or a dropped mirror write.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, projectID string) (domain.Project, bool) {
	data, err := c.client.Get(ctx, c.key(projectID)).Result()
	if err == redis.Nil {
		return domain.Project{}, false
	}
	if err != nil {
		log.Printf("storage: redis get %s: %v", projectID, err)
		return domain.Project{}, false
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		log.Printf("storage: redis unmarshal %s: %v", projectID, err)
		return domain.Project{}, false
	}
	return p, true
}

func (c *RedisCache) Set(ctx context.Context, projectID string, p domain.Project) {
	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("storage: redis marshal %s: %v", projectID, err)
		return
	}
	if err := c.client.Set(ctx, c.key(projectID), data, projectTTL).Err(); err != nil {
		log.Printf("storage: redis set %s: %v", projectID, err)
	}
}

func (c *RedisCache) key(projectID string) string {
	return projectKeyPrefix + projectID
}
