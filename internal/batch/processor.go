package batch

import (
	"context"
	"sync"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/rs/zerolog"
)

type Evaluator interface {
	Execute(ctx context.Context, evalCtx models.EvaluationContext) models.EvaluationResult
}

// Processor evaluates records on a fixed pool of workers. Result order is
// not preserved.
type Processor struct {
	executor Evaluator
	workers  int
	logger   *zerolog.Logger
}

func NewProcessor(exec Evaluator, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		executor: exec,
		workers:  workers,
		logger:   logger,
	}
}

// Process skips records that failed to parse.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan models.EvaluationResult {
	jobs := make(chan InputRecord)
	results := make(chan models.EvaluationResult, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for record := range jobs {
				p.logger.Debug().
					Int("worker", workerID).
					Int("line", record.LineNumber).
					Str("event_id", record.Request.EventID).
					Msg("Evaluating record")

				result := p.executor.Execute(ctx, record.Request.Normalize())

				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			if record.Error != nil {
				p.logger.Warn().Int("line", record.LineNumber).Err(record.Error).Msg("Skipping invalid record")
				continue
			}
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
