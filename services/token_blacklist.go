package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist records session tokens invalidated before their natural
// expiry (logout, forced sign-out of a non-admin).
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisTokenBlacklist keeps revoked tokens in Redis with a TTL matching
// the token's remaining lifetime, so entries clean themselves up.
type RedisTokenBlacklist struct {
	client *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func (b *RedisTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := fmt.Sprintf("revoked_token:%s", token)
	return b.client.Set(ctx, key, "1", ttl).Err()
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("revoked_token:%s", token)
	if _, err := b.client.Get(ctx, key).Result(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MemoryTokenBlacklist is the fallback when Redis is unavailable. A
// janitor goroutine sweeps expired entries hourly.
type MemoryTokenBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	b := &MemoryTokenBlacklist{tokens: make(map[string]time.Time)}
	go b.cleanup()
	return b
}

func (b *MemoryTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	b.tokens[token] = time.Now().Add(ttl)
	b.mu.Unlock()
	return nil
}

func (b *MemoryTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	b.mu.RLock()
	expiry, exists := b.tokens[token]
	b.mu.RUnlock()
	if !exists {
		return false, nil
	}
	if time.Now().After(expiry) {
		b.mu.Lock()
		delete(b.tokens, token)
		b.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (b *MemoryTokenBlacklist) cleanup() {
	for {
		time.Sleep(1 * time.Hour)
		now := time.Now()
		b.mu.Lock()
		for token, expiry := range b.tokens {
			if now.After(expiry) {
				delete(b.tokens, token)
			}
		}
		b.mu.Unlock()
	}
}
