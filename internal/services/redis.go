package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

func tutorSearchKey(module string) string {
	return "tutors:search:" + strings.ToLower(strings.TrimSpace(module))
}

// CacheTutorSearch stores a serialized search result for a module query
func CacheTutorSearch(ctx context.Context, module string, payload []byte) error {
	return RedisClient.Set(ctx, tutorSearchKey(module), payload, 5*time.Minute).Err()
}

// GetCachedTutorSearch retrieves a cached search result for a module query
func GetCachedTutorSearch(ctx context.Context, module string) ([]byte, error) {
	data, err := RedisClient.Get(ctx, tutorSearchKey(module)).Result()
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// InvalidateTutorSearch drops every cached search result. Called whenever a
// tutor is registered, approved, rejected, updated or removed.
func InvalidateTutorSearch(ctx context.Context) error {
	keys, err := RedisClient.Keys(ctx, "tutors:search:*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return RedisClient.Del(ctx, keys...).Err()
}

// PublishBookingUpdate publishes a booking status change to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, bookingID uint, status string, data map[string]interface{}) error {
	updateData := map[string]interface{}{
		"bookingId": bookingID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "booking:updates", jsonData).Err()
}
