package prechecks

import (
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/repetition"
)

// VocabularyChecker scores an answer by the share of its words that are distinct.
type VocabularyChecker struct {
	MinDistinctRatio float64
}

func NewVocabularyChecker(minDistinctRatio float64) *VocabularyChecker {
	return &VocabularyChecker{MinDistinctRatio: minDistinctRatio}
}

func (c *VocabularyChecker) Check(evaluationContext models.EvaluationContext) models.StageResult {
	now := time.Now()
	result := models.StageResult{Name: "vocabulary-checker"}

	report := repetition.Analyze(evaluationContext.Answer)
	if report.TokenCount == 0 {
		result.Reason = "Empty answer"
		result.Duration = time.Since(now)
		return result
	}

	result.Score = report.DistinctRatio()
	if result.Score < c.MinDistinctRatio {
		result.Reason = fmt.Sprintf("Narrow vocabulary: %.0f%% of words are distinct", result.Score*100)
	} else {
		result.Reason = "Vocabulary is varied"
	}

	result.Duration = time.Since(now)
	return result
}
