package quality

import (
	"github.com/kynrd/threadloom/pkg/types"
)

// scoreDistribution penalizes uneven persona usage, repeated venues and
// overused tags within the batch.
func (s *Scorer) scoreDistribution(batch *types.Batch) float64 {
	score := 10.0

	ratio := personaUsageRatio(batch)
	switch {
	case ratio > 3:
		score -= 2.0
	case ratio > 2:
		score -= 1.0
	}

	if hasVenueRepeat(batch) {
		score -= 3.0
	}

	if maxTagUsage(batch) >= 3 {
		score -= 1.0
	}

	return score
}

// personaUsageRatio is the max/min ratio of post+comment appearances over
// personas that appear at least once.
func personaUsageRatio(batch *types.Batch) float64 {
	counts := make(map[string]int)
	for _, p := range batch.Posts {
		counts[p.AuthorID]++
	}
	for _, c := range batch.Comments {
		counts[c.AuthorID]++
	}
	if len(counts) == 0 {
		return 1
	}

	min, max := -1, 0
	for _, n := range counts {
		if n > max {
			max = n
		}
		if min == -1 || n < min {
			min = n
		}
	}
	if min <= 0 {
		return 1
	}
	return float64(max) / float64(min)
}

func hasVenueRepeat(batch *types.Batch) bool {
	seen := make(map[string]bool)
	for _, p := range batch.Posts {
		if seen[p.VenueID] {
			return true
		}
		seen[p.VenueID] = true
	}
	return false
}

func maxTagUsage(batch *types.Batch) int {
	counts := make(map[string]int)
	max := 0
	for _, p := range batch.Posts {
		for _, id := range p.TagIDs {
			counts[id]++
			if counts[id] > max {
				max = counts[id]
			}
		}
	}
	return max
}
