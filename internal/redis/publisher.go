package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StreamAdder is the part of the Redis client used for publishing.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Publisher appends JSON documents to a stream under a single field.
type Publisher struct {
	client StreamAdder
	stream string
	field  string
}

func NewPublisher(client StreamAdder, stream string, field string) *Publisher {
	return &Publisher{
		client: client,
		stream: stream,
		field:  field,
	}
}

// Publish marshals v and returns the ID Redis assigned to the entry.
func (p *Publisher) Publish(ctx context.Context, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s entry: %w", p.stream, err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{p.field: string(payload)},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish to %s: %w", p.stream, err)
	}

	return id, nil
}
