package judge

import (
	"context"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/repetition"
)

type Judge interface {
	Evaluate(ctx context.Context, evaluationContext models.EvaluationContext) models.StageResult
}

// PromptInput is the data a judge prompt template is rendered against.
// The evaluation context fields are promoted, so {{.Answer}} works as well
// as {{.Repetition.Phrase}}.
type PromptInput struct {
	models.EvaluationContext
	Repetition repetition.Report
}

func newPromptInput(evalCtx models.EvaluationContext) PromptInput {
	return PromptInput{
		EvaluationContext: evalCtx,
		Repetition:        repetition.Analyze(evalCtx.Answer),
	}
}
