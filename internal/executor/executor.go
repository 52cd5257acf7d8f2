package executor

//go:generate mockgen -source=executor.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/rs/zerolog"
)

// PrecheckRunner runs precheck stage evaluations
type PrecheckRunner interface {
	Run(evalCtx models.EvaluationContext) []models.StageResult
}

// JudgeRunner runs LLM judge evaluations
type JudgeRunner interface {
	Run(ctx context.Context, evalCtx models.EvaluationContext) []models.StageResult
}

// Aggregator aggregates stage results into final evaluation
type Aggregator interface {
	Aggregate(id string, stage1 []models.StageResult, stage2 []models.StageResult) models.EvaluationResult
}

// Recorder persists finished evaluations
type Recorder interface {
	SaveResult(ctx context.Context, result models.EvaluationResult) error
}

type Executor struct {
	precheckStageRunner PrecheckRunner
	judgeRunner         JudgeRunner
	aggregator          Aggregator
	recorder            Recorder
	earlyExitThreshold  float64
	logger              *zerolog.Logger
}

// NewExecutor wires the pipeline. judgeRunner may be nil, in which case the
// verdict is derived from prechecks alone.
func NewExecutor(
	prechecks PrecheckRunner,
	judgeRunner JudgeRunner,
	aggregator Aggregator,
	earlyExitThreshold float64,
	logger *zerolog.Logger,
) *Executor {
	return &Executor{
		precheckStageRunner: prechecks,
		judgeRunner:         judgeRunner,
		aggregator:          aggregator,
		earlyExitThreshold:  earlyExitThreshold,
		logger:              logger,
	}
}

// WithRecorder makes the executor hand every result to r.
func (e *Executor) WithRecorder(r Recorder) *Executor {
	e.recorder = r
	return e
}

func (e *Executor) Execute(ctx context.Context, evalCtx models.EvaluationContext) models.EvaluationResult {
	result := e.execute(ctx, evalCtx)

	if e.recorder != nil {
		if err := e.recorder.SaveResult(ctx, result); err != nil {
			e.logger.Error().Err(err).Str("requestID", result.ID).Msg("failed to record evaluation")
		}
	}

	return result
}

func (e *Executor) execute(ctx context.Context, evalCtx models.EvaluationContext) models.EvaluationResult {
	id := evalCtx.RequestID
	e.logger.Info().Str("requestID", id).Msg("starting evaluation")

	result := models.EvaluationResult{
		ID:     id,
		Stages: []models.StageResult{},
	}

	stageEvalResults := e.precheckStageRunner.Run(evalCtx)

	if len(stageEvalResults) == 0 {
		result.Verdict = models.VerdictFail
		return result
	}

	stageEvalScore := 0.0
	for _, stageEval := range stageEvalResults {
		stageEvalScore += stageEval.Score
	}

	stageEvalAvgScore := stageEvalScore / float64(len(stageEvalResults))

	if stageEvalAvgScore < e.earlyExitThreshold {
		result.Stages = append(result.Stages, stageEvalResults...)
		result.Confidence = stageEvalAvgScore
		result.Verdict = models.VerdictFail
		e.logger.Info().Str("requestID", id).Float64("avgScore", stageEvalAvgScore).Msg("early exit triggered")

		return result
	}

	var judgeEvalResults []models.StageResult
	if e.judgeRunner != nil {
		judgeEvalResults = e.judgeRunner.Run(ctx, evalCtx)
	}

	finalResult := e.aggregator.Aggregate(id, stageEvalResults, judgeEvalResults)
	e.logger.
		Info().
		Str("requestID", id).
		Str("verdict", string(finalResult.Verdict)).
		Float64("confidence", finalResult.Confidence).
		Msg("evaluation complete")
	return finalResult
}
