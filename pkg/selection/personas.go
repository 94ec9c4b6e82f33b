package selection

import (
	"fmt"
	"time"

	"github.com/kynrd/threadloom/pkg/types"
)

// persona scoring weights
const (
	personaAuthenticityWeight = 0.6
	personaRestWeight         = 0.25
	personaVarietyWeight      = 0.15

	// Applied when a persona has posted three or more consecutive weeks.
	consecutiveWeeksPenalty = 0.3
)

// assignPersona picks the highest-scoring persona for a venue, excluding
// any persona already assigned a post in this batch. Ties keep
// reference-data order.
func (s *Selector) assignPersona(venue types.Venue, used map[string]bool) (types.Persona, error) {
	cands := make([]Candidate[types.Persona], 0, len(s.inputs.Personas))
	for _, p := range s.inputs.Personas {
		if used[p.ID] {
			continue
		}
		cands = append(cands, Candidate[types.Persona]{Item: p, Score: s.scorePersona(p, venue)})
	}
	if len(cands) == 0 {
		return types.Persona{}, fmt.Errorf("all %d personas already assigned this batch", len(s.inputs.Personas))
	}

	SortByScore(cands)
	return cands[0].Item, nil
}

func (s *Selector) scorePersona(p types.Persona, venue types.Venue) float64 {
	return p.Voice.AuthenticityIn(venue.ID)*personaAuthenticityWeight +
		s.personaRestBonus(p.ID)*personaRestWeight +
		s.personaVarietyBonus(p.ID)*personaVarietyWeight
}

// personaRestBonus rewards idle time since last use, minus a penalty for
// personas that have posted three or more consecutive weeks.
func (s *Selector) personaRestBonus(personaID string) float64 {
	q, ok := s.state.Quotas.Personas[personaID]
	if !ok {
		return 1.0
	}

	bonus := 0.0
	days := daysBetween(s.now, q.LastUsed)
	switch {
	case days >= 14:
		bonus = 1.0
	case days >= 7:
		bonus = 0.6
	case days >= 3:
		bonus = 0.3
	}

	if q.ConsecutiveWeeks >= 3 {
		bonus -= consecutiveWeeksPenalty
	}
	return bonus
}

// personaVarietyBonus rewards personas with few active weeks in the
// trailing three weeks.
func (s *Selector) personaVarietyBonus(personaID string) float64 {
	q, ok := s.state.Quotas.Personas[personaID]
	if !ok {
		return 0.5
	}

	switch weeksActive(q.PostTimes, s.now, 3) {
	case 0:
		return 0.5
	case 1:
		return 0.2
	default:
		return 0
	}
}

// weeksActive counts distinct calendar weeks with at least one timestamp in
// the trailing n weeks.
func weeksActive(times []time.Time, now time.Time, n int) int {
	cutoff := now.AddDate(0, 0, -7*n)
	weeks := make(map[int]bool)
	for _, t := range times {
		if !t.After(cutoff) {
			continue
		}
		year, week := t.ISOWeek()
		weeks[year*100+week] = true
	}
	return len(weeks)
}
