package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/handson-platform/handson-backend/config"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

const tokenBlacklistPrefix = "blacklist:token:"

// InitRedis connects the shared client used for token revocation,
// rate limiting and notification pub/sub.
func InitRedis(cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(Ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	RedisClient = client
	return nil
}

// BlacklistToken revokes a session token until its natural expiry.
func BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return RedisClient.Set(ctx, tokenBlacklistPrefix+token, "revoked", ttl).Err()
}

// IsTokenBlacklisted reports whether a token was revoked by logout.
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := RedisClient.Exists(ctx, tokenBlacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
