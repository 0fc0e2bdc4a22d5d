package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the flash message store. Nil when REDIS_ADDR is unset or unreachable.
var RedisClient *redis.Client

// InitRedis builds the client from REDIS_ADDR, REDIS_PASS and REDIS_DB.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	RedisClient = redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASS"),
		DB:          db,
		DialTimeout: 2 * time.Second,
	})
}

// PingRedis checks the configured server and disables Redis when it does not answer.
func PingRedis(ctx context.Context) error {
	if RedisClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		RedisClient = nil
		return err
	}
	return nil
}
