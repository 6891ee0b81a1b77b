// Package redis publishes domain events on a Redis pub/sub channel.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"restaurant/pkg/events"
)

// Publisher sends events as JSON messages to a single channel.
type Publisher struct {
	client  redis.UniversalClient
	channel string
}

// New creates a Redis publisher.
func New(client redis.UniversalClient, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// Publish encodes e and publishes it on the configured channel.
func (p *Publisher) Publish(ctx context.Context, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", e.Type, err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", e.Type, err)
	}
	return nil
}

// Subscribe returns a channel of decoded events; it is closed when ctx is
// done. Messages that do not decode are skipped.
func (p *Publisher) Subscribe(ctx context.Context) (<-chan events.Event, error) {
	sub := p.client.Subscribe(ctx, p.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", p.channel, err)
	}

	out := make(chan events.Event)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var e events.Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
