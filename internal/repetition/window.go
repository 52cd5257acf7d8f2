// Package repetition measures how repetitive a piece of text is by finding
// the longest contiguous run of words that contains no repeated word.
package repetition

import (
	"strings"
	"unicode"
)

// Window is a half-open range [Start, End) over a token sequence.
type Window struct {
	Start int
	End   int
}

func (w Window) Len() int {
	return w.End - w.Start
}

// Tokenize splits s on whitespace. Empty and whitespace-only input yields no
// tokens. The ASCII separators 0x1C-0x1F count as whitespace too.
func Tokenize(s string) []string {
	return strings.FieldsFunc(s, isSeparator)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// LongestSubsequence returns the length of the longest contiguous run of
// words in s without a duplicate word.
func LongestSubsequence(s string) int {
	return Scan(Tokenize(s)).Len()
}

// Scan returns the longest window of pairwise distinct tokens. Ties resolve
// to the earliest window.
func Scan(tokens []string) Window {
	seen := make(map[string]struct{}, len(tokens))
	best := Window{}
	l := 0

	for r, token := range tokens {
		for {
			if _, ok := seen[token]; !ok {
				break
			}
			delete(seen, tokens[l])
			l++
		}

		if r-l+1 > best.Len() {
			best = Window{Start: l, End: r + 1}
		}
		seen[token] = struct{}{}
	}

	return best
}
