package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/rs/zerolog"
)

// maxLineSize bounds a single JSONL record. Answers can be long.
const maxLineSize = 1024 * 1024

type InputRecord struct {
	Request    models.EvaluationRequest
	LineNumber int
	Error      error
}

type Reader struct {
	r      io.Reader
	logger *zerolog.Logger
}

func NewReader(r io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{r: r, logger: logger}
}

// ReadAll streams one record per non-blank line. Parse failures are reported
// on the record, not by closing the channel.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
				r.logger.Debug().Int("line", lineNumber).Err(err).Msg("Failed to parse record")
			}

			select {
			case out <- record:
			case <-ctx.Done():
				r.logger.Warn().Int("line", lineNumber).Msg("Reader cancelled")
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to read input")
			select {
			case out <- InputRecord{LineNumber: lineNumber + 1, Error: fmt.Errorf("read input: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}
