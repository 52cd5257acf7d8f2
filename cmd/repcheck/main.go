package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/repetition"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// repcheck prints the longest run of words without a repeated word.
// Each argument is one input; without arguments, each stdin line is one.
func main() {
	asJSON := flag.Bool("json", false, "Print the full report as JSON")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if flag.NArg() > 0 {
		if err := reportAll(os.Stdout, flag.Args(), *asJSON); err != nil {
			log.Fatal().Err(err).Msg("Failed to write result")
		}
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := report(os.Stdout, scanner.Text(), *asJSON); err != nil {
			log.Fatal().Err(err).Msg("Failed to write result")
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to read stdin")
	}
}

func reportAll(w io.Writer, texts []string, asJSON bool) error {
	for _, text := range texts {
		if err := report(w, text, asJSON); err != nil {
			return err
		}
	}
	return nil
}

func report(w io.Writer, text string, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, repetition.LongestSubsequence(text))
		return err
	}
	return json.NewEncoder(w).Encode(models.NewRepetitionResponse(repetition.Analyze(text)))
}
