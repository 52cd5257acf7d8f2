package prechecks

import (
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/repetition"
)

// RepetitionChecker scores an answer by the longest run of words without a
// repeated word, relative to the answer length. An answer that never repeats
// a word scores 1.0.
type RepetitionChecker struct {
	MinUniqueRatio float64
}

func NewRepetitionChecker(minUniqueRatio float64) *RepetitionChecker {
	return &RepetitionChecker{MinUniqueRatio: minUniqueRatio}
}

func (c *RepetitionChecker) Check(evaluationContext models.EvaluationContext) models.StageResult {
	now := time.Now()
	result := models.StageResult{Name: "repetition-checker"}

	report := repetition.Analyze(evaluationContext.Answer)
	if report.TokenCount == 0 {
		result.Reason = "Empty answer"
		result.Duration = time.Since(now)
		return result
	}

	result.Score = report.UniqueRunRatio()
	if result.Score < c.MinUniqueRatio {
		result.Reason = fmt.Sprintf("Repetitive answer: longest run without a repeated word is %d of %d words", report.Longest.Len(), report.TokenCount)
	} else {
		result.Reason = "No significant repetition"
	}

	result.Duration = time.Since(now)
	return result
}
