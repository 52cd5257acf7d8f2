package aggregator

import (
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/rs/zerolog"
)

type Weights struct {
	PreChecks float64
	LLMJudge  float64
}

// Thresholds map confidence onto a verdict: above Pass passes, above Review
// goes to review, anything else fails.
type Thresholds struct {
	Pass   float64
	Review float64
}

type Aggregator struct {
	Weights    Weights
	Thresholds Thresholds
	logger     *zerolog.Logger
}

func NewAggregator(weights Weights, thresholds Thresholds, logger *zerolog.Logger) *Aggregator {
	if thresholds.Pass == 0 {
		thresholds.Pass = 0.8
	}
	if thresholds.Review == 0 {
		thresholds.Review = 0.5
	}

	return &Aggregator{
		Weights:    weights,
		Thresholds: thresholds,
		logger:     logger,
	}
}

// Aggregate combines precheck (stage1) and judge (stage2) results. When no
// judge ran, the precheck average is the confidence.
func (a *Aggregator) Aggregate(id string, stage1 []models.StageResult, stage2 []models.StageResult) models.EvaluationResult {
	result := models.EvaluationResult{
		ID:     id,
		Stages: append(append([]models.StageResult{}, stage1...), stage2...),
	}

	if len(stage1) == 0 {
		result.Verdict = models.VerdictFail
		return result
	}

	stage1Avg := average(stage1)
	confidence := stage1Avg

	if len(stage2) > 0 {
		stage2Avg := average(stage2)
		total := a.Weights.PreChecks + a.Weights.LLMJudge
		if total > 0 {
			confidence = (stage1Avg*a.Weights.PreChecks + stage2Avg*a.Weights.LLMJudge) / total
		} else {
			confidence = (stage1Avg + stage2Avg) / 2
		}
	}

	result.Confidence = confidence
	result.Verdict = a.calculateVerdict(confidence)

	a.logger.
		Info().
		Str("id", id).
		Float64("confidence", confidence).
		Int("judges", len(stage2)).
		Str("verdict", string(result.Verdict)).
		Msg("aggregation complete")
	return result
}

func average(results []models.StageResult) float64 {
	sum := 0.0
	for _, r := range results {
		sum += r.Score
	}
	return sum / float64(len(results))
}

func (a *Aggregator) calculateVerdict(confidence float64) models.Verdict {
	if confidence > a.Thresholds.Pass {
		return models.VerdictPass
	}
	if confidence > a.Thresholds.Review {
		return models.VerdictReview
	}
	return models.VerdictFail
}
