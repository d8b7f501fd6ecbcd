package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// usedKey is the Redis set holding every used story ID. No TTL: a
// story stays used forever.
const usedKey = "stories:used"

// RedisLedger keeps used story IDs in a Redis set shared between
// processes.
type RedisLedger struct {
	client *redis.Client
	key    string
}

var _ Ledger = (*RedisLedger)(nil)

// NewRedisLedger connects to Redis and verifies connectivity.
func NewRedisLedger(addr string) (*RedisLedger, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisLedger{client: client, key: usedKey}, nil
}

func (l *RedisLedger) MarkUsed(ctx context.Context, storyID string) error {
	return l.client.SAdd(ctx, l.key, storyID).Err()
}

func (l *RedisLedger) IsUsed(ctx context.Context, storyID string) (bool, error) {
	return l.client.SIsMember(ctx, l.key, storyID).Result()
}

// Close closes the underlying Redis client.
func (l *RedisLedger) Close() error {
	return l.client.Close()
}
