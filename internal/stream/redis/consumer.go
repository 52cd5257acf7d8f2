package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Evaluator runs the evaluation pipeline for one request.
type Evaluator interface {
	Execute(ctx context.Context, evalCtx models.EvaluationContext) models.EvaluationResult
}

// ResultPublisher forwards finished evaluations downstream.
type ResultPublisher interface {
	Publish(ctx context.Context, v any) (string, error)
}

// StreamClient is the subset of *redis.Client the consumer needs.
type StreamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

type ConsumerConfig struct {
	Stream       string
	Group        string
	ConsumerName string
}

type Consumer struct {
	client       StreamClient
	stream       string
	groupID      string
	consumerName string
	executor     Evaluator
	publisher    ResultPublisher
	logger       *zerolog.Logger

	// RetryDelay is the pause after a failed read.
	RetryDelay time.Duration
}

// NewConsumer builds a consumer-group reader. publisher may be nil.
func NewConsumer(client StreamClient, cfg ConsumerConfig, exec Evaluator, publisher ResultPublisher, logger *zerolog.Logger) *Consumer {
	consumerName := cfg.ConsumerName
	if consumerName == "" {
		consumerName = "repetition-agent"
	}

	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		groupID:      cfg.Group,
		consumerName: consumerName,
		executor:     exec,
		publisher:    publisher,
		logger:       logger,
		RetryDelay:   time.Second,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Dur("retry_in", c.RetryDelay).Msg("Failed to read from stream")
			select {
			case <-time.After(c.RetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	// Every outcome is ACKed; a message that cannot be decoded will not
	// decode on redelivery either.
	defer c.ack(ctx, msg.ID)

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		return
	}

	var evalRequest models.EvaluationRequest
	if err := json.Unmarshal([]byte(payload), &evalRequest); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		return
	}

	if evalRequest.EventID == "" {
		evalRequest.EventID = msg.ID
	}

	result := c.executor.Execute(ctx, evalRequest.Normalize())

	c.logger.Info().
		Str("id", msg.ID).
		Str("event_id", result.ID).
		Str("verdict", string(result.Verdict)).
		Float64("confidence", result.Confidence).
		Msg("Evaluation complete")

	if c.publisher == nil {
		return
	}

	resultID, err := c.publisher.Publish(ctx, result)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to publish result")
		return
	}
	c.logger.Debug().Str("id", msg.ID).Str("result_id", resultID).Msg("Result published")
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
