// Package quality implements the text quality gate that drives the
// extraction cascade: each stage's output is tested, and failure triggers
// the next, more expensive stage.
package quality

import (
	"strings"
	"unicode"
)

// Gate classifies extracted text as usable or noise.
// Pure and deterministic; both thresholds come from configuration.
type Gate struct {
	minLength     int
	minAlnumRatio float64
}

// New creates a gate with the given thresholds. minLength is the minimum
// trimmed length in runes; minAlnumRatio is the minimum share of Latin,
// Cyrillic and digit runes in the trimmed text.
func New(minLength int, minAlnumRatio float64) *Gate {
	return &Gate{
		minLength:     minLength,
		minAlnumRatio: minAlnumRatio,
	}
}

// Usable reports whether the text is long enough and carries enough
// alphanumeric content to be worth indexing.
func (g *Gate) Usable(text string) bool {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 || len(runes) < g.minLength {
		return false
	}

	if g.minAlnumRatio <= 0 {
		return true
	}

	alnum := 0
	for _, r := range runes {
		if isAlnum(r) {
			alnum++
		}
	}
	return float64(alnum)/float64(len(runes)) >= g.minAlnumRatio
}

// isAlnum reports whether the rune counts toward the alphanumeric ratio.
// The corpus is Latin and Cyrillic; other scripts do not count.
func isAlnum(r rune) bool {
	return unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Cyrillic, r) || unicode.IsDigit(r)
}
