package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/batch"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	startTime := time.Now()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	input := flag.String("input", "", "Input file relative path, '-' for stdin")
	output := flag.String("output", "", "Output file relative path")
	format := flag.String("format", batch.FormatJSONL, "Output file format. Supported formats: 'jsonl', 'summary'")
	summary := flag.String("summary", "", "Optional separate summary file")
	workers := flag.Int("workers", 5, "Concurrent evaluators workers")
	continueOnError := flag.Bool("continue-on-error", true, "Continue on evaluation failures")
	dryRun := flag.Bool("dry-run", false, "Validate input without evaluating")

	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, cancel := setupGracefulShutdown()
	defer cancel()

	// Open input file
	var inputFile io.Reader
	if *input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("Reading from stdin")
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Str("file", *input).Msg("Failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", *input).Msg("Reading input file")
	}

	// Read records
	var records []batch.InputRecord
	for record := range batch.NewReader(inputFile, &log.Logger).ReadAll(ctx) {
		records = append(records, record)
	}

	log.Info().Int("total", len(records)).Msg("Input file parsed")

	// Dry run validation
	if *dryRun {
		dryRunAndExit(records)
	}

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	// Open output file
	var outputFile io.Writer
	if *output == "" {
		outputFile = os.Stdout
		log.Info().Msg("Writing to stdout")
	} else {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		outputFile = f
		log.Info().Str("file", *output).Msg("Writing to output file")
	}

	// Create writer
	writer, err := batch.NewWriter(outputFile, *format, deps.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create writer")
	}

	// Process with worker pool
	processor := batch.NewProcessor(deps.Executor, *workers, deps.Logger)
	results := processor.Process(ctx, records)

	// Write results
	successCount := 0
	errorCount := 0

	for result := range results {
		if err := writer.Write(result); err != nil {
			log.Error().Err(err).Str("id", result.ID).Msg("Failed to write result")
			errorCount++

			if !*continueOnError {
				log.Fatal().Msg("Stopping due to write error")
			}
		} else {
			successCount++
		}
	}

	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to flush output")
	}

	log.Info().
		Int("success", successCount).
		Int("errors", errorCount).
		Dur("duration", time.Since(startTime)).
		Msg("Processing complete")

	if *summary != "" {
		writeSummary(*summary, writer.Summary())
	}

	log.Info().Msg("Batch processing complete")
}

func setupGracefulShutdown() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Warn().Msg("Received interrupt signal, finishing current work...")
		cancel()
	}()

	return ctx, cancel
}

func writeSummary(path string, summary batch.Summary) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal summary")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to write summary file")
	}

	log.Info().Str("file", path).Msg("Summary written")
}

func dryRunAndExit(records []batch.InputRecord) {
	errorCount := 0
	for _, record := range records {
		if record.Error != nil {
			log.Error().
				Int("line", record.LineNumber).
				Err(record.Error).
				Msg("Validation error")
			errorCount++
		}
	}

	if errorCount > 0 {
		log.Fatal().Int("errors", errorCount).Msg("Validation failed")
	}

	log.Info().Msg("Validation successful")
	os.Exit(0)
}
