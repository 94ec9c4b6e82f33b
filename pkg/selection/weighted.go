// Package selection implements the quota-aware selectors that turn engine
// state into a draft set of posts.
package selection

import (
	"math/rand"
	"sort"
)

// Candidate pairs an item with its computed score.
type Candidate[T any] struct {
	Item  T
	Score float64
}

// SortByScore sorts candidates by score descending. The sort is stable so
// ties keep their original order.
func SortByScore[T any](cands []Candidate[T]) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
}

// WeightedPick selects one item at random, proportionally to its weight.
// Items with non-positive weight are never picked unless all weights are
// non-positive, in which case the pick is uniform.
func WeightedPick[T any](rng *rand.Rand, items []T, weight func(T) float64) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}

	total := 0.0
	for _, it := range items {
		if w := weight(it); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return items[rng.Intn(len(items))], true
	}

	r := rng.Float64() * total
	cumulative := 0.0
	for _, it := range items {
		w := weight(it)
		if w <= 0 {
			continue
		}
		cumulative += w
		if r < cumulative {
			return it, true
		}
	}
	return items[len(items)-1], true
}

// Shuffle permutes a slice in place.
func Shuffle[T any](rng *rand.Rand, items []T) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
