package repetition

import "strings"

// Report summarizes the repetition profile of a text.
type Report struct {
	TokenCount    int    `json:"token_count"`
	DistinctCount int    `json:"distinct_count"`
	Longest       Window `json:"-"`
	Phrase        string `json:"phrase"`
}

// Analyze tokenizes s and scans it once.
func Analyze(s string) Report {
	tokens := Tokenize(s)
	window := Scan(tokens)

	distinct := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		distinct[t] = struct{}{}
	}

	return Report{
		TokenCount:    len(tokens),
		DistinctCount: len(distinct),
		Longest:       window,
		Phrase:        strings.Join(tokens[window.Start:window.End], " "),
	}
}

// UniqueRunRatio is the longest unique run divided by the token count.
// Text without tokens has ratio 0.
func (r Report) UniqueRunRatio() float64 {
	if r.TokenCount == 0 {
		return 0.0
	}
	return float64(r.Longest.Len()) / float64(r.TokenCount)
}

// DistinctRatio is the share of tokens that are distinct.
func (r Report) DistinctRatio() float64 {
	if r.TokenCount == 0 {
		return 0.0
	}
	return float64(r.DistinctCount) / float64(r.TokenCount)
}
