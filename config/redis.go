package config

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis establishes the Redis connection used for the session
// token blacklist. Returns nil when Redis is not configured or not
// reachable; callers fall back to the in-memory blacklist.
func ConnectRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("Redis not configured; using in-memory token blacklist")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		log.Println("Falling back to in-memory token blacklist")
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
