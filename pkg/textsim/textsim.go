// Package textsim provides string similarity primitives used by topic
// selection and diversity scoring.
package textsim

import (
	"math"
	"strings"
)

// Tokenize splits text into lowercase word tokens, stripping punctuation.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '\''
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// termFreq builds a token frequency vector.
func termFreq(tokens []string) map[string]float64 {
	freq := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	return freq
}

// Cosine computes token-frequency cosine similarity between two texts.
// Returns 0 when either side has no tokens.
func Cosine(a, b string) float64 {
	fa := termFreq(Tokenize(a))
	fb := termFreq(Tokenize(b))
	if len(fa) == 0 || len(fb) == 0 {
		return 0
	}

	dot := 0.0
	for t, ca := range fa {
		if cb, ok := fb[t]; ok {
			dot += ca * cb
		}
	}

	normA := 0.0
	for _, c := range fa {
		normA += c * c
	}
	normB := 0.0
	for _, c := range fb {
		normB += c * c
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Jaccard computes token-set Jaccard similarity between two texts.
func Jaccard(a, b string) float64 {
	sa := make(map[string]bool)
	for _, t := range Tokenize(a) {
		sa[t] = true
	}
	sb := make(map[string]bool)
	for _, t := range Tokenize(b) {
		sb[t] = true
	}
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	intersection := 0
	for t := range sa {
		if sb[t] {
			intersection++
		}
	}
	union := len(sa) + len(sb) - intersection
	return float64(intersection) / float64(union)
}

// Combined averages cosine and Jaccard similarity. This is the measure used
// by topic de-duplication and the diversity scorer.
func Combined(a, b string) float64 {
	return (Cosine(a, b) + Jaccard(a, b)) / 2
}

// Overlap counts how many of the given terms appear as substrings of text
// (case-insensitive).
func Overlap(text string, terms []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			n++
		}
	}
	return n
}
