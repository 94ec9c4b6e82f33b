package quality

import (
	"github.com/kynrd/threadloom/pkg/textsim"
	"github.com/kynrd/threadloom/pkg/types"
)

// Topics from prior weeks at or above this combined similarity count as
// repeats.
const diversityTopicCutoff = 0.75

// scoreDiversity penalizes topic overlap with the prior four weeks, venues
// still warm in the rotation, and repetitive persona pairings.
func (s *Scorer) scoreDiversity(batch *types.Batch) float64 {
	score := 10.0
	score -= s.topicOverlapPenalty(batch)
	score -= s.rotationPenalty(batch)
	score -= s.pairingHistoryPenalty(batch)
	return score
}

// topicOverlapPenalty charges 1.5 per prior-week topic that is too similar
// to any current topic, capped at 4.0.
func (s *Scorer) topicOverlapPenalty(batch *types.Batch) float64 {
	current := make([]string, 0, len(batch.Posts))
	for _, p := range batch.Posts {
		current = append(current, p.Topic)
	}

	penalty := 0.0
	for _, prior := range s.state.History.RecentBatches(4) {
		for _, pp := range prior.Posts {
			for _, topic := range current {
				if textsim.Combined(pp.Topic, topic) >= diversityTopicCutoff {
					penalty += 1.5
					break
				}
			}
		}
	}
	if penalty > 4.0 {
		penalty = 4.0
	}
	return penalty
}

// rotationPenalty charges 2.0 per current venue found in the last six
// rotation entries, capped at 3.0.
func (s *Scorer) rotationPenalty(batch *types.Batch) float64 {
	recent := make(map[string]bool)
	for _, id := range s.state.Patterns.RecentRotation(6) {
		recent[id] = true
	}

	penalty := 0.0
	for _, p := range batch.Posts {
		if recent[p.VenueID] {
			penalty += 2.0
		}
	}
	if penalty > 3.0 {
		penalty = 3.0
	}
	return penalty
}

// pairingHistoryPenalty charges 1.0 per author/commenter pair in this batch
// that has already occurred twice or more, capped at 2.0.
func (s *Scorer) pairingHistoryPenalty(batch *types.Batch) float64 {
	authors := make(map[string]string, len(batch.Posts)) // post id -> author
	for _, p := range batch.Posts {
		authors[p.ID] = p.AuthorID
	}

	seen := make(map[string]bool)
	penalty := 0.0
	for _, c := range batch.Comments {
		author, ok := authors[c.PostID]
		if !ok || author == c.AuthorID {
			continue
		}
		key := types.PairKey(author, c.AuthorID)
		if seen[key] {
			continue
		}
		seen[key] = true
		if s.state.Patterns.PersonaPairs[key] >= 2 {
			penalty += 1.0
		}
	}
	if penalty > 2.0 {
		penalty = 2.0
	}
	return penalty
}
