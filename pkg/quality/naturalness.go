package quality

import (
	"strings"

	"github.com/kynrd/threadloom/pkg/types"
)

// scoreNaturalness starts at 10 and penalizes text that reads too polished:
// too few informal signals, uniform title lengths, sterile comments, and
// forced SEO-style phrasing.
func (s *Scorer) scoreNaturalness(batch *types.Batch) float64 {
	score := 10.0

	var all strings.Builder
	for _, p := range batch.Posts {
		all.WriteString(p.Title)
		all.WriteString(" ")
		all.WriteString(p.Body)
		all.WriteString("\n")
	}
	for _, c := range batch.Comments {
		all.WriteString(c.Text)
		all.WriteString("\n")
	}
	combined := all.String()

	if informalSignalCount(combined) < 2 {
		score -= 1.5
	}

	if titleVarianceTooLow(batch.Posts) {
		score -= 1.0
	}

	score -= (1 - commentNaturalnessFactor(batch.Comments)) * 2.0

	score -= forcedContentPenalty(batch)

	return score
}

// informalSignalCount counts which of the four informality signal types
// appear anywhere in the text.
func informalSignalCount(text string) int {
	n := 0
	if containsAny(text, casualMarkers) {
		n++
	}
	if hasLowercaseStart(text) {
		n++
	}
	if missingTerminalPunctuation(text) {
		n++
	}
	if hasInformalCaps(text) {
		n++
	}
	return n
}

// titleVarianceTooLow reports whether title word counts are suspiciously
// uniform (mean-normalized variance under 0.5).
func titleVarianceTooLow(posts []types.Post) bool {
	if len(posts) < 2 {
		return false
	}
	counts := make([]float64, 0, len(posts))
	mean := 0.0
	for _, p := range posts {
		n := float64(len(strings.Fields(p.Title)))
		counts = append(counts, n)
		mean += n
	}
	mean /= float64(len(counts))
	if mean == 0 {
		return true
	}
	return variance(counts)/mean < 0.5
}

// commentNaturalnessFactor starts at 1 and loses weight per missing
// informality signal across the batch's comments.
func commentNaturalnessFactor(comments []types.Comment) float64 {
	if len(comments) == 0 {
		return 1.0
	}

	factor := 1.0

	hasShortAgreement := false
	lengths := make([]float64, 0, len(comments))
	var all strings.Builder
	for _, c := range comments {
		words := len(strings.Fields(c.Text))
		lengths = append(lengths, float64(words))
		if words > 0 && words <= 6 {
			hasShortAgreement = true
		}
		all.WriteString(c.Text)
		all.WriteString("\n")
	}
	combined := all.String()

	if !hasShortAgreement {
		factor -= 0.25
	}
	if !containsAny(combined, casualMarkers) {
		factor -= 0.3
	}
	if len(lengths) >= 2 {
		mean := 0.0
		for _, l := range lengths {
			mean += l
		}
		mean /= float64(len(lengths))
		if mean > 0 && variance(lengths)/mean < 0.5 {
			factor -= 0.2
		}
	}
	if containsAny(combined, formalConnectives) {
		factor -= 0.25
	}

	if factor < 0 {
		factor = 0
	}
	return factor
}

// forcedContentPenalty charges for SEO-template phrasing and tag stuffing,
// capped at 3.0.
func forcedContentPenalty(batch *types.Batch) float64 {
	penalty := 0.0
	for _, p := range batch.Posts {
		penalty += float64(countAny(p.Title+" "+p.Body, seoTemplates))
		if len(p.TagIDs) > 3 {
			penalty += 1.0
		}
	}
	if penalty > 3.0 {
		penalty = 3.0
	}
	return penalty
}
