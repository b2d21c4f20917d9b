// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"swiftmove/config"

	"github.com/go-redis/redis/v8"
)

var (
	// DraftCacheClient holds in-progress booking drafts.
	DraftCacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

// InitDraftCache initializes the Redis client backing the booking draft store.
func InitDraftCache() {
	DraftCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDraftDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DraftCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Draft Cache): %v", err)
	}
}

// GetDraftCacheClient returns the draft cache client.
func GetDraftCacheClient() *redis.Client {
	if DraftCacheClient == nil {
		InitDraftCache()
	}
	return DraftCacheClient
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitRedis initializes all Redis clients used by the app.
func InitRedis() {
	InitDraftCache()
	InitAuthCache()
}

// revokedKeyPrefix namespaces revoked-token entries in the auth cache.
const revokedKeyPrefix = "revoked:"

// RevokeToken marks a bearer token revoked for the given TTL, which should
// cover the token's remaining lifetime. Only the token's hash is stored.
func RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	return GetAuthCacheClient().Set(ctx, revokedKeyPrefix+HashToken(token), 1, ttl).Err()
}

// IsTokenRevoked reports whether the token has been revoked. A cache error
// fails open; the token's own signature and expiry still apply.
func IsTokenRevoked(ctx context.Context, token string) bool {
	n, err := GetAuthCacheClient().Exists(ctx, revokedKeyPrefix+HashToken(token)).Result()
	return err == nil && n > 0
}
