package judge

import (
	"context"
	"sync"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/rs/zerolog"
)

type JudgeRunner struct {
	Judges []Judge
	logger *zerolog.Logger
}

func NewJudgeRunner(judges []Judge, logger *zerolog.Logger) *JudgeRunner {
	return &JudgeRunner{
		Judges: judges,
		logger: logger,
	}
}

// Run evaluates every judge concurrently. Results keep the judge order.
func (r *JudgeRunner) Run(ctx context.Context, evaluationContext models.EvaluationContext) []models.StageResult {
	stageResults := make([]models.StageResult, len(r.Judges))
	var wg sync.WaitGroup

	for i, judge := range r.Judges {
		wg.Add(1)
		go func(i int, j Judge) {
			defer wg.Done()
			stageResults[i] = j.Evaluate(ctx, evaluationContext)
		}(i, judge)
	}

	wg.Wait()

	r.logger.Debug().
		Str("request_id", evaluationContext.RequestID).
		Int("judges", len(stageResults)).
		Msg("judge stage complete")

	return stageResults
}
