package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tejas4149/EstateHub-backend/internal/config"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Token revocation and caching will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// Token Blacklist (logout revocation)

func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	key := fmt.Sprintf("token_blacklist:%s", jti)
	return Redis.Set(Ctx, key, "revoked", ttl).Err()
}

func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	key := fmt.Sprintf("token_blacklist:%s", jti)
	exists, err := Redis.Exists(Ctx, key).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// Caching (best-effort, hot reads like featured listings)

func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, data, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return redis.Nil
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(pattern string) error {
	if Redis == nil {
		return nil
	}
	keys, err := Redis.Keys(Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(Ctx, keys...).Err()
	}
	return nil
}
