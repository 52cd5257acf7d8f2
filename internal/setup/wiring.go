package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/aggregator"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/config"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/judge"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/prechecks"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/store"
	"github.com/rs/zerolog"
)

type Config struct {
	AWSRegion     string
	ClaudeModelID string
	LogLevel      string

	// Optional overrides of the YAML aggregation block. Zero keeps the file value.
	PrecheckWeight     float64
	LLMJudgeWeight     float64
	EarlyExitThreshold float64

	RedisAddr     string
	RedisPassword string

	Database store.Config
}

type Dependencies struct {
	Executor *executor.Executor
	Checks   *config.ChecksConfig
	DB       *store.DB
	Logger   *zerolog.Logger
}

// Close releases the database pool, if one was opened.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:      getEnv("CLAUDE_MODEL_ID", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		PrecheckWeight:     getEnvFloat("PRECHECK_WEIGHT", 0),
		LLMJudgeWeight:     getEnvFloat("LLM_JUDGE_WEIGHT", 0),
		EarlyExitThreshold: getEnvFloat("EARLY_EXIT_THRESHOLD", 0),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		Database: store.Config{
			Host:     getEnv("DATABASE_HOST", ""),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", ""),
			Database: getEnv("DATABASE_NAME", "evals"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		},
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	checksCfg, err := config.LoadChecksConfig()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn().Msg("No checks config found, using defaults")
		checksCfg = config.Default()
	case err != nil:
		return nil, fmt.Errorf("failed to load checks config: %w", err)
	}
	cfg.applyOverrides(checksCfg)

	// Judges need a model; without one the pipeline runs prechecks only.
	var llmClient llm.LLMClient
	if cfg.ClaudeModelID != "" {
		client, err := bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
		if err != nil {
			return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
		}
		llmClient = client
	} else {
		logger.Warn().Msg("CLAUDE_MODEL_ID not set, LLM judges disabled")
	}

	exec, err := BuildExecutor(checksCfg, llmClient, logger)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Executor: exec,
		Checks:   checksCfg,
		Logger:   logger,
	}

	if cfg.Database.Host != "" {
		db, err := store.New(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		exec.WithRecorder(db)
		deps.DB = db
		logger.Info().Str("host", cfg.Database.Host).Msg("Persisting evaluation results")
	}

	return deps, nil
}

// BuildExecutor assembles the pipeline from the checks config. llmClient may
// be nil.
func BuildExecutor(checksCfg *config.ChecksConfig, llmClient llm.LLMClient, logger *zerolog.Logger) (*executor.Executor, error) {
	stageRunner := prechecks.NewStageRunner(BuildCheckers(checksCfg.Prechecks))

	var judgeRunner executor.JudgeRunner
	if llmClient != nil {
		judges, err := judge.NewJudgePool(llmClient, logger).BuildFromConfig(checksCfg.Judges)
		if err != nil {
			return nil, fmt.Errorf("failed to build judges from config: %w", err)
		}
		if len(judges) > 0 {
			judgeRunner = judge.NewJudgeRunner(judges, logger)
		}
	}

	agg := aggregator.NewAggregator(
		aggregator.Weights{
			PreChecks: checksCfg.Aggregation.PrecheckWeight,
			LLMJudge:  checksCfg.Aggregation.JudgeWeight,
		},
		aggregator.Thresholds{
			Pass:   checksCfg.Aggregation.PassThreshold,
			Review: checksCfg.Aggregation.ReviewThreshold,
		},
		logger,
	)

	return executor.NewExecutor(stageRunner, judgeRunner, agg, checksCfg.Aggregation.EarlyExitThreshold, logger), nil
}

// BuildCheckers returns the enabled prechecks. The format checker always runs.
func BuildCheckers(cfg config.PrechecksConfig) []prechecks.Checker {
	checkers := []prechecks.Checker{}
	if config.IsEnabled(cfg.Repetition.Enabled) {
		checkers = append(checkers, prechecks.NewRepetitionChecker(cfg.Repetition.MinUniqueRatio))
	}
	if config.IsEnabled(cfg.Vocabulary.Enabled) {
		checkers = append(checkers, prechecks.NewVocabularyChecker(cfg.Vocabulary.MinDistinctRatio))
	}
	return append(checkers, prechecks.NewFormatChecker())
}

func (c *Config) applyOverrides(checksCfg *config.ChecksConfig) {
	if c.PrecheckWeight > 0 {
		checksCfg.Aggregation.PrecheckWeight = c.PrecheckWeight
	}
	if c.LLMJudgeWeight > 0 {
		checksCfg.Aggregation.JudgeWeight = c.LLMJudgeWeight
	}
	if c.EarlyExitThreshold > 0 {
		checksCfg.Aggregation.EarlyExitThreshold = c.EarlyExitThreshold
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}
