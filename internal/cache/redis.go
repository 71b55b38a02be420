package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Accounting summary cache keys. Every mutating operation on charges,
// payments or lots invalidates all of them; summaries are always served
// either straight from storage or from a copy of a full storage read.
const (
	OrdersSummaryKey    = "accounting:orders"
	CustomersSummaryKey = "accounting:customers"
	ExcessIndexKey      = "accounting:excess"

	summaryTTL = 60 * time.Second
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: on error the
// caller keeps running and every read goes to the database.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Available reports whether the cache is usable.
func Available() bool {
	return client != nil
}

// GetJSON loads a cached value into dest. Returns false on miss, cache
// disabled, or decode failure.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON stores a value under key with the summary TTL. Failures are
// ignored; the cache is best effort.
func SetJSON(ctx context.Context, key string, value interface{}) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, summaryTTL)
}

// InvalidateSummaries drops all accounting summary keys. Called after every
// payment, charge edit, reassignment or lot mutation.
func InvalidateSummaries(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, OrdersSummaryKey, CustomersSummaryKey, ExcessIndexKey)
}
