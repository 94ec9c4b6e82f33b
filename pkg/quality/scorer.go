// Package quality scores generated batches on five dimensions and derives
// quality flags.
package quality

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kynrd/threadloom/pkg/types"
)

// Dimension weights. They sum to 1.0.
const (
	WeightNaturalness  = 0.30
	WeightDistribution = 0.25
	WeightConsistency  = 0.20
	WeightDiversity    = 0.15
	WeightTiming       = 0.10
)

// Scorer evaluates a batch against the current state snapshot.
type Scorer struct {
	personas map[string]types.Persona
	state    *types.StateStore
	now      time.Time
	log      *logrus.Logger
}

// New creates a scorer.
func New(personas []types.Persona, state *types.StateStore, now time.Time, log *logrus.Logger) *Scorer {
	pm := make(map[string]types.Persona, len(personas))
	for _, p := range personas {
		pm[p.ID] = p
	}
	return &Scorer{personas: pm, state: state, now: now, log: log}
}

// Score computes all five dimensions, the weighted aggregate and flags.
// Every reported value is clamped to [0,10] and rounded to one decimal.
func (s *Scorer) Score(batch *types.Batch) *types.QualityScore {
	score := &types.QualityScore{
		Naturalness:  round1(clampScore(s.scoreNaturalness(batch))),
		Distribution: round1(clampScore(s.scoreDistribution(batch))),
		Consistency:  round1(clampScore(s.scoreConsistency(batch))),
		Diversity:    round1(clampScore(s.scoreDiversity(batch))),
		Timing:       round1(clampScore(s.scoreTiming(batch))),
	}
	score.Aggregate = round1(Aggregate(score))
	score.Flags = s.detectFlags(batch, score)

	s.log.WithFields(logrus.Fields{
		"naturalness":  score.Naturalness,
		"distribution": score.Distribution,
		"consistency":  score.Consistency,
		"diversity":    score.Diversity,
		"timing":       score.Timing,
		"aggregate":    score.Aggregate,
		"flags":        len(score.Flags),
	}).Debug("batch scored")

	return score
}

// Aggregate returns the weighted sum of the five dimensions, unrounded.
func Aggregate(q *types.QualityScore) float64 {
	return q.Naturalness*WeightNaturalness +
		q.Distribution*WeightDistribution +
		q.Consistency*WeightConsistency +
		q.Diversity*WeightDiversity +
		q.Timing*WeightTiming
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// variance returns the population variance of the samples.
func variance(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	mean := 0.0
	for _, s := range samples {
		mean += s
	}
	mean /= float64(len(samples))

	v := 0.0
	for _, s := range samples {
		d := s - mean
		v += d * d
	}
	return v / float64(len(samples))
}
