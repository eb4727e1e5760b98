package repository

import (
	"context"

	errprocess "drift_chronicles_service/pkg/err"
	"drift_chronicles_service/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// MessageBroker definition fan-out of chat update notifications
type MessageBroker interface {
	// Publish notify subscribers of channel
	Publish(ctx context.Context, channel string, payload []byte) error
	// Subscribe run handler for every payload on channel until ctx ends
	Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error
}

type redisMessageBroker struct {
	client *redis.Client
}

// NewRedisMessageBroker create a MessageBroker
func NewRedisMessageBroker(client *redis.Client) MessageBroker {
	return &redisMessageBroker{client: client}
}

func (b *redisMessageBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return errprocess.Wrap(errprocess.KindStorage, "failed to publish chat update", err)
	}
	return nil
}

// Subscribe blocks until the subscription is established, then consumes
// in a goroutine. Close on ctx.Done unblocks the channel range.
func (b *redisMessageBroker) Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error {
	sub := b.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return errprocess.Wrap(errprocess.KindStorage, "failed to subscribe chat updates", err)
	}

	ch := sub.Channel()
	go func() {
		<-ctx.Done()
		if err := sub.Close(); err != nil {
			logger.Log.Warn("close chat subscription: " + err.Error())
		}
	}()
	go func() {
		for msg := range ch {
			handler([]byte(msg.Payload))
		}
	}()
	return nil
}
