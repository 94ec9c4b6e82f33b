package selection

import (
	"strings"

	"github.com/kynrd/threadloom/pkg/types"
)

// tag scoring weights
const (
	tagRelevanceWeight = 0.7
	tagFreshnessWeight = 0.3
)

// selectTags attaches one to three top-scoring tags to a post.
func (s *Selector) selectTags(topic string, format types.PostFormat) []string {
	cands := make([]Candidate[types.Tag], 0, len(s.inputs.Tags))
	for _, t := range s.inputs.Tags {
		score := tagRelevance(t, topic, format)*tagRelevanceWeight +
			s.tagFreshness(t.ID)*tagFreshnessWeight
		cands = append(cands, Candidate[types.Tag]{Item: t, Score: score})
	}
	SortByScore(cands)

	count := 1 + s.rng.Intn(3)
	if count > len(cands) {
		count = len(cands)
	}
	ids := make([]string, 0, count)
	for _, c := range cands[:count] {
		ids = append(ids, c.Item.ID)
	}
	return ids
}

// tagRelevance starts at a 0.3 baseline and rewards format/intent pairing
// and literal term overlap with the topic, capped at 1.0.
func tagRelevance(tag types.Tag, topic string, format types.PostFormat) float64 {
	score := 0.3

	switch {
	case tag.Intent == types.IntentComparison && format == types.FormatComparison:
		score += 0.4
	case tag.Intent == types.IntentRecommendation && format == types.FormatDirectQuestion:
		score += 0.4
	case tag.Intent == types.IntentAssistance || tag.Intent == types.IntentEfficiency:
		score += 0.2
	}

	lowerTopic := strings.ToLower(topic)
	for _, term := range tag.SemanticTerms {
		if term != "" && strings.Contains(lowerTopic, strings.ToLower(term)) {
			score += 0.1
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// tagFreshness penalizes heavily-used tags and rewards long-unused ones.
func (s *Selector) tagFreshness(tagID string) float64 {
	q, ok := s.state.Quotas.Tags[tagID]
	if !ok {
		return 1.0
	}

	switch {
	case q.UsageCount >= 5:
		return 0.2
	case q.UsageCount >= 3:
		return 0.5
	}

	days := daysBetween(s.now, q.LastUsed)
	switch {
	case days >= 14:
		return 1.0
	case days >= 7:
		return 0.7
	default:
		return 0.5
	}
}
