package lib

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// RedisBookingLocker serializes check-then-create link generation per
// booking with a SET NX advisory lock. When redis is not configured the
// section runs unlocked; the stores' conditional updates remain the
// correctness backstop.
type RedisBookingLocker struct {
	TTL time.Duration
}

func (l *RedisBookingLocker) WithLock(ctx context.Context, bookingID uint, fn func() error) error {
	rdb := GetRedisClient()
	if rdb == nil {
		return fn()
	}
	ttl := l.TTL
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	key := fmt.Sprintf("booking:%d:links_lock", bookingID)
	token := uuid.NewString()
	acquired := false
	for i := 0; i < 100; i++ {
		ok, err := rdb.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			log.Printf("[redis] lock error for %s: %s\n", key, err.Error())
			return fn()
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return fmt.Errorf("could not acquire link lock for booking %d", bookingID)
	}
	defer func() {
		val, err := rdb.Get(context.Background(), key).Result()
		if err == nil && val == token {
			rdb.Del(context.Background(), key)
		}
	}()
	return fn()
}
