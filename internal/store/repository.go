package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
)

var ErrNotFound = errors.New("evaluation result not found")

// SaveResult upserts a result and replaces its stages in one transaction.
func (db *DB) SaveResult(ctx context.Context, result models.EvaluationResult) error {
	if result.ID == "" {
		return errors.New("evaluation result has no id")
	}

	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO evaluation_results (id, confidence, verdict)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE
			SET confidence = EXCLUDED.confidence, verdict = EXCLUDED.verdict, created_at = now()`,
			result.ID, result.Confidence, string(result.Verdict))
		if err != nil {
			return fmt.Errorf("insert result: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM evaluation_stages WHERE result_id = $1`, result.ID); err != nil {
			return fmt.Errorf("clear stages: %w", err)
		}

		batch := &pgx.Batch{}
		for i, stage := range result.Stages {
			batch.Queue(`
				INSERT INTO evaluation_stages (result_id, position, name, score, reason, duration_ns)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				result.ID, i, stage.Name, stage.Score, stage.Reason, stage.Duration.Nanoseconds())
		}
		if batch.Len() == 0 {
			return nil
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert stages: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result %s: %w", result.ID, err)
	}

	db.logger.Debug().Str("id", result.ID).Int("stages", len(result.Stages)).Msg("Evaluation result saved")
	return nil
}

func (db *DB) GetResult(ctx context.Context, id string) (models.EvaluationResult, error) {
	result := models.EvaluationResult{ID: id}

	var verdict string
	err := db.Pool.QueryRow(ctx,
		`SELECT confidence, verdict FROM evaluation_results WHERE id = $1`, id,
	).Scan(&result.Confidence, &verdict)
	if errors.Is(err, pgx.ErrNoRows) {
		return result, ErrNotFound
	}
	if err != nil {
		return result, fmt.Errorf("failed to load result %s: %w", id, err)
	}
	result.Verdict = models.Verdict(verdict)

	rows, err := db.Pool.Query(ctx, `
		SELECT name, score, reason, duration_ns
		FROM evaluation_stages
		WHERE result_id = $1
		ORDER BY position`, id)
	if err != nil {
		return result, fmt.Errorf("failed to load stages for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var stage models.StageResult
		var durationNs int64
		if err := rows.Scan(&stage.Name, &stage.Score, &stage.Reason, &durationNs); err != nil {
			return result, fmt.Errorf("failed to scan stage: %w", err)
		}
		stage.Duration = time.Duration(durationNs)
		result.Stages = append(result.Stages, stage)
	}

	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}
