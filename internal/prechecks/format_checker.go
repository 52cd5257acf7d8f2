package prechecks

import (
	"regexp"
	"time"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/repetition"
)

type FormatChecker struct {
}

func NewFormatChecker() *FormatChecker {
	return &FormatChecker{}
}

var repeatedPunctuation = regexp.MustCompile(`[!?.]{3,}`)

func (c *FormatChecker) Check(evaluationContext models.EvaluationContext) models.StageResult {
	now := time.Now()
	result := models.StageResult{Name: "format-checker"}

	tokens := repetition.Tokenize(evaluationContext.Answer)

	switch {
	case len(tokens) == 0:
		result.Reason = "Empty answer"
	case len(tokens) < 2:
		result.Reason = "Short answer"
	case repeatedPunctuation.MatchString(evaluationContext.Answer):
		result.Reason = "Answer contains repeatable characters"
		result.Score = 0.5
	default:
		result.Reason = "Valid Answer"
		result.Score = 1.0
	}

	result.Duration = time.Since(now)
	return result
}
