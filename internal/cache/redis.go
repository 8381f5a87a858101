// Package cache wraps the Redis client used for the historian queue and the
// best-score leaderboard.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mathematico/server/internal/models"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// DefaultQueueName is the Redis list the game server pushes finished round
// records onto and the historian pops from.
const DefaultQueueName = "mathematico_rounds"

// Connect initializes the global client from REDIS_ADDR (default
// "localhost:6379") and REDIS_DB (default 0) and pings it.
func Connect(ctx context.Context) error {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// QueueName returns the configured historian queue name.
func QueueName() string {
	return getEnv("HISTORIAN_QUEUE_NAME", DefaultQueueName)
}

// PublishRoundRecord serializes the record and pushes it onto the historian
// queue. The round loop is not blocked beyond a quick network send.
func PublishRoundRecord(ctx context.Context, record models.RoundRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal round record: %w", err)
	}
	if err := Rdb.RPush(ctx, QueueName(), data).Err(); err != nil {
		return fmt.Errorf("rpush to %q: %w", QueueName(), err)
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
