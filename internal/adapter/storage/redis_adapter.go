package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	orderNumberKeyPrefix = "ordernum:"
	orderNumberKeyTTL    = 24 * time.Hour
)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

// ReserveOrderNumber claims an order number with SETNX so two instances
// generating the same number cannot both insert. The key expires after the
// unique index has long since become the durable guarantee.
func (r *RedisAdapter) ReserveOrderNumber(ctx context.Context, number string) (bool, error) {
	return r.client.SetNX(ctx, orderNumberKeyPrefix+number, 1, orderNumberKeyTTL).Result()
}
