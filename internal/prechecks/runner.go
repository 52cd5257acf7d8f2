package prechecks

import (
	"sync"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
)

type StageRunner struct {
	Checkers []Checker
}

func NewStageRunner(checkers []Checker) *StageRunner {
	return &StageRunner{
		Checkers: checkers,
	}
}

// Run executes every checker concurrently. Results keep the checker order.
func (r *StageRunner) Run(evaluationContext models.EvaluationContext) []models.StageResult {
	stageResults := make([]models.StageResult, len(r.Checkers))
	var wg sync.WaitGroup

	for i, checker := range r.Checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			stageResults[i] = c.Check(evaluationContext)
		}(i, checker)
	}

	wg.Wait()
	return stageResults
}
