package selection

import (
	"github.com/kynrd/threadloom/pkg/types"
)

// venue scoring weights
const (
	venueCultureWeight   = 0.4
	venueDiversityWeight = 0.3
	venueRecencyWeight   = 0.2
	venueFrequencyWeight = 0.1
)

// selectVenues scores every venue and returns the top batchSize by score.
// Ties keep reference-data order.
func (s *Selector) selectVenues(batchSize int) []types.Venue {
	cands := make([]Candidate[types.Venue], 0, len(s.inputs.Venues))
	for _, v := range s.inputs.Venues {
		cands = append(cands, Candidate[types.Venue]{Item: v, Score: s.scoreVenue(v)})
	}
	SortByScore(cands)

	n := batchSize
	if n > len(cands) {
		n = len(cands)
	}
	out := make([]types.Venue, 0, n)
	for _, c := range cands[:n] {
		out = append(out, c.Item)
	}
	return out
}

func (s *Selector) scoreVenue(v types.Venue) float64 {
	return s.venueCultureMatch(v)*venueCultureWeight +
		s.venueDiversityBonus(v.ID)*venueDiversityWeight -
		s.venueRecencyPenalty(v.ID)*venueRecencyWeight -
		s.venueFrequencyPenalty(v.ID)*venueFrequencyWeight
}

// venueCultureMatch measures how plausibly the current cast can post in a
// venue: the mean per-venue authenticity across all personas.
func (s *Selector) venueCultureMatch(v types.Venue) float64 {
	if len(s.inputs.Personas) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, p := range s.inputs.Personas {
		sum += p.Voice.AuthenticityIn(v.ID)
	}
	return sum / float64(len(s.inputs.Personas))
}

// venueRecencyPenalty steps by days since the venue was last posted in.
func (s *Selector) venueRecencyPenalty(venueID string) float64 {
	q, ok := s.state.Quotas.Venues[venueID]
	if !ok || q.LastPosted.IsZero() {
		return 0
	}
	days := daysBetween(s.now, q.LastPosted)
	switch {
	case days < 7:
		return 0.9
	case days < 14:
		return 0.5
	case days < 21:
		return 0.2
	default:
		return 0
	}
}

// venueFrequencyPenalty steps by post count in the trailing 30 days.
func (s *Selector) venueFrequencyPenalty(venueID string) float64 {
	q, ok := s.state.Quotas.Venues[venueID]
	if !ok {
		return 0
	}
	count := countSince(q.PostTimes, s.now.AddDate(0, 0, -30))
	switch {
	case count >= 3:
		return 0.9
	case count >= 2:
		return 0.4
	default:
		return 0
	}
}

// venueDiversityBonus rewards venues absent from the recent rotation.
func (s *Selector) venueDiversityBonus(venueID string) float64 {
	appearances := 0
	for _, id := range s.state.Patterns.RecentRotation(5) {
		if id == venueID {
			appearances++
		}
	}
	switch appearances {
	case 0:
		return 1.0
	case 1:
		return 0.3
	default:
		return 0
	}
}
