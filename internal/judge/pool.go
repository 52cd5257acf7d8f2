package judge

import (
	"fmt"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/config"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/llm"
	"github.com/rs/zerolog"
)

// JudgePool builds judges from configuration
type JudgePool struct {
	llmClient llm.LLMClient
	logger    *zerolog.Logger
}

func NewJudgePool(llmClient llm.LLMClient, logger *zerolog.Logger) *JudgePool {
	return &JudgePool{
		llmClient: llmClient,
		logger:    logger,
	}
}

// BuildFromConfig returns one judge per enabled evaluator. An empty result is
// not an error: the pipeline then relies on prechecks alone.
func (p *JudgePool) BuildFromConfig(judges config.Judges) ([]Judge, error) {
	if p.llmClient == nil {
		return nil, fmt.Errorf("judge pool has no LLM client")
	}

	var built []Judge

	for _, judgeCfg := range judges.Evaluators {
		if !judgeCfg.Enabled {
			p.logger.Info().
				Str("judge", judgeCfg.Name).
				Msg("judge disabled in config, skipping")
			continue
		}

		judge, err := NewLLMJudge(judgeCfg, p.llmClient, p.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create judge %s: %w", judgeCfg.Name, err)
		}

		built = append(built, judge)

		p.logger.Info().
			Str("judge", judgeCfg.Name).
			Int("max_tokens", judgeCfg.Model.MaxTokens).
			Float64("temperature", judgeCfg.Model.Temperature).
			Bool("retry", judgeCfg.Model.Retry).
			Msg("judge created successfully")
	}

	p.logger.Info().
		Int("total_judges", len(built)).
		Msg("judge pool built")

	return built, nil
}
