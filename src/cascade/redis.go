package cascade

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes the event as JSON on a pub/sub channel the matcher
// subscribes to.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Emit(ctx context.Context, event TransactionsImported) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return &CascadeError{Sink: "redis", EventID: event.EventID, Err: err}
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return &CascadeError{Sink: "redis", EventID: event.EventID, Err: err}
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
