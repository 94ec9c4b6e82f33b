package selection

import (
	"github.com/kynrd/threadloom/pkg/textsim"
	"github.com/kynrd/threadloom/pkg/types"
)

// Topics more similar than this to a venue's prior topics are skipped.
const topicSimilarityCutoff = 0.7

// selectTopic picks a pain point for the persona that fits the venue and is
// not too close to topics already used there. Falls back to a random
// candidate when every option is too similar.
func (s *Selector) selectTopic(persona types.Persona, venue types.Venue) string {
	candidates := make([]string, 0, len(persona.PainPoints))
	for _, pp := range persona.PainPoints {
		if textsim.Overlap(pp, venue.RelevanceTerms) > 0 {
			candidates = append(candidates, pp)
		}
	}
	// No venue-relevant pain points: consider them all.
	if len(candidates) == 0 {
		candidates = append(candidates, persona.PainPoints...)
	}
	if len(candidates) == 0 {
		return ""
	}

	Shuffle(s.rng, candidates)

	priorTopics := s.venueTopics(venue.ID)
	for _, c := range candidates {
		if !tooSimilar(c, priorTopics) {
			return c
		}
	}
	return candidates[s.rng.Intn(len(candidates))]
}

func (s *Selector) venueTopics(venueID string) []string {
	if q, ok := s.state.Quotas.Venues[venueID]; ok {
		return q.TopicsUsed
	}
	return nil
}

func tooSimilar(topic string, priors []string) bool {
	for _, p := range priors {
		if textsim.Combined(topic, p) >= topicSimilarityCutoff {
			return true
		}
	}
	return false
}

type formatWeight struct {
	format types.PostFormat
	weight float64
}

// formatWeights is the fixed distribution over post formats. Weights sum to
// 1.0. Recent-format history is deliberately not consulted here; see the
// design notes.
var formatWeights = []formatWeight{
	{types.FormatDirectQuestion, 0.30},
	{types.FormatComparison, 0.25},
	{types.FormatRecommendation, 0.25},
	{types.FormatExperience, 0.20},
}

// selectFormat makes a weighted choice among the fixed format set.
func (s *Selector) selectFormat() types.PostFormat {
	picked, _ := WeightedPick(s.rng, formatWeights, func(fw formatWeight) float64 {
		return fw.weight
	})
	return picked.format
}
