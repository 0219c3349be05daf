package impl_messaging

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher announces transfer events on a redis pub/sub channel.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("messaging: publish to %s: %w", channel, err)
	}

	return nil
}
