package stream

import (
	"context"
	"fmt"

	red "github.com/povarna/generative-ai-agents/repetition-agent/internal/redis"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/stream/redis"
	"github.com/rs/zerolog"
)

type StreamConfig struct {
	Provider     string // only "redis" today
	RedisAddr    string
	RedisPass    string
	Stream       string
	ResultStream string
	Group        string
	ConsumerName string
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	exec redis.Evaluator,
	logger *zerolog.Logger,
) (StreamConsumer, error) {

	// If provider is empty, fallback to the default configuration.
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		client, err := red.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPass, 5)
		if err != nil {
			return nil, err
		}

		var publisher redis.ResultPublisher
		if cfg.ResultStream != "" {
			publisher = red.NewPublisher(client, cfg.ResultStream, "result")
		}

		return redis.NewConsumer(
			client,
			redis.ConsumerConfig{
				Stream:       cfg.Stream,
				Group:        cfg.Group,
				ConsumerName: cfg.ConsumerName,
			},
			exec,
			publisher,
			logger,
		), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
