package models

import "github.com/povarna/generative-ai-agents/repetition-agent/internal/repetition"

// NewRepetitionResponse flattens a scanner report for the wire. RepetitionScore
// is the longest unique run over the token count, so 1.0 means no repeated word.
func NewRepetitionResponse(report repetition.Report) RepetitionResponse {
	return RepetitionResponse{
		TokenCount:      report.TokenCount,
		DistinctCount:   report.DistinctCount,
		LongestRun:      report.Longest.Len(),
		WindowStart:     report.Longest.Start,
		WindowEnd:       report.Longest.End,
		Phrase:          report.Phrase,
		RepetitionScore: report.UniqueRunRatio(),
	}
}
