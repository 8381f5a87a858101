// cmd/historian is an asynchronous service that pops finished round records
// from the Redis queue and persists them to PostgreSQL in batches.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/mathematico/server/internal/cache"
	"github.com/mathematico/server/internal/database"
	"github.com/mathematico/server/internal/models"
)

// Historian accumulates round records popped from Redis and flushes them to
// the database once the batch fills up or the flush interval elapses.
type Historian struct {
	redisClient *redis.Client
	batchSize   int
	flushDelay  time.Duration

	batchMu sync.Mutex
	batch   []models.RoundRecord

	ctx      context.Context
	cancelFn context.CancelFunc
}

func NewHistorian() *Historian {
	batchSize := getEnvInt("HISTORIAN_BATCH_SIZE", 20)
	flushMs := getEnvInt("HISTORIAN_FLUSH_MS", 500)

	rdb := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		DB:   getEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &Historian{
		redisClient: rdb,
		batchSize:   batchSize,
		flushDelay:  time.Duration(flushMs) * time.Millisecond,
		batch:       make([]models.RoundRecord, 0, batchSize),
		ctx:         ctx,
		cancelFn:    cancel,
	}
}

// Run drains the queue until the context is cancelled, then flushes whatever
// remains in the batch.
func (h *Historian) Run() {
	go h.readQueueLoop()

	log.Println("mathematico-historian service started")
	<-h.ctx.Done()
	h.flushBatch()
	log.Println("mathematico-historian shutting down")
}

func (h *Historian) Stop() {
	h.cancelFn()
}

func (h *Historian) readQueueLoop() {
	ticker := time.NewTicker(h.flushDelay)
	defer ticker.Stop()

	queueName := cache.QueueName()
	for {
		select {
		case <-h.ctx.Done():
			return

		case <-ticker.C:
			h.flushBatch()

		default:
			// BLPop with a short timeout so cancellation is noticed.
			res, err := h.redisClient.BLPop(h.ctx, 3*time.Second, queueName).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && h.ctx.Err() == nil {
					log.Printf("blpop: %v", err)
				}
				continue
			}
			if len(res) < 2 {
				continue
			}

			var record models.RoundRecord
			if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
				log.Printf("invalid round record: %v", err)
				continue
			}

			h.batchMu.Lock()
			h.batch = append(h.batch, record)
			full := len(h.batch) >= h.batchSize
			h.batchMu.Unlock()
			if full {
				h.flushBatch()
			}
		}
	}
}

func (h *Historian) flushBatch() {
	h.batchMu.Lock()
	if len(h.batch) == 0 {
		h.batchMu.Unlock()
		return
	}
	pending := h.batch
	h.batch = make([]models.RoundRecord, 0, h.batchSize)
	h.batchMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.InsertRoundRecords(ctx, pending); err != nil {
		log.Printf("flush %d round records: %v", len(pending), err)
		// Requeue on the batch head so records are not lost.
		h.batchMu.Lock()
		h.batch = append(pending, h.batch...)
		h.batchMu.Unlock()
	}
}

func main() {
	if err := database.Connect(context.Background()); err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer database.DB.Close()

	h := NewHistorian()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		<-sigs
		h.Stop()
	}()

	h.Run()
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
