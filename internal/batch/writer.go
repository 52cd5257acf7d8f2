package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

type Summary struct {
	Total          int                    `json:"total"`
	Verdicts       map[models.Verdict]int `json:"verdicts"`
	MeanConfidence float64                `json:"mean_confidence"`
}

// Writer emits one JSON line per result, or a single summary document on
// Close when the format is "summary".
type Writer struct {
	w       io.Writer
	format  string
	enc     *json.Encoder
	summary Summary
	sum     float64
	logger  *zerolog.Logger
}

func NewWriter(w io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &Writer{
		w:       w,
		format:  format,
		enc:     json.NewEncoder(w),
		summary: Summary{Verdicts: map[models.Verdict]int{}},
		logger:  logger,
	}, nil
}

func (w *Writer) Write(result models.EvaluationResult) error {
	w.summary.Total++
	w.summary.Verdicts[result.Verdict]++
	w.sum += result.Confidence

	if w.format != FormatJSONL {
		return nil
	}
	if err := w.enc.Encode(result); err != nil {
		return fmt.Errorf("encode result %s: %w", result.ID, err)
	}
	return nil
}

// Summary returns the running totals.
func (w *Writer) Summary() Summary {
	s := w.summary
	if s.Total > 0 {
		s.MeanConfidence = w.sum / float64(s.Total)
	}
	return s
}

func (w *Writer) Close() error {
	if w.format != FormatSummary {
		return nil
	}

	s := w.Summary()
	w.logger.Info().Int("total", s.Total).Float64("mean_confidence", s.MeanConfidence).Msg("Writing summary")

	enc := json.NewEncoder(w.w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
