package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/setup"
	applog "github.com/povarna/generative-ai-agents/repetition-agent/internal/setup/logger"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/stream"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg := setup.LoadConfig()

	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = applog.FromFormat(os.Getenv("LOG_FORMAT"), cfg.LogLevel)
	logger := log.Logger

	if envErr != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	streamCfg := &stream.StreamConfig{
		Provider:     os.Getenv("STREAM_PROVIDER"),
		RedisAddr:    cfg.RedisAddr,
		RedisPass:    cfg.RedisPassword,
		Stream:       "eval-events",
		ResultStream: "eval-results",
		Group:        "eval-group",
		ConsumerName: os.Getenv("HOSTNAME"),
	}

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Executor, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	// Setup consumer
	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	// Start consumer
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	// Wait for context to be done
	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	if err := consumer.Stop(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop consumer")
	}

	log.Info().Msg("Repetition Agent stopped")
}
