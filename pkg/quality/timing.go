package quality

import (
	"sort"
	"time"

	"github.com/kynrd/threadloom/pkg/types"
)

// scoreTiming penalizes mechanical comment spacing, weekend or bunched
// posting, and activity in the dead of night.
func (s *Scorer) scoreTiming(batch *types.Batch) float64 {
	score := 10.0
	score -= commentGapPenalty(batch)
	score -= postSpreadPenalty(batch)
	score -= nightActivityPenalty(batch)
	return score
}

// commentGaps collects the minute gaps between consecutive comments within
// each post's thread, ordered by timestamp.
func commentGaps(batch *types.Batch) []float64 {
	byPost := make(map[string][]time.Time)
	for _, c := range batch.Comments {
		byPost[c.PostID] = append(byPost[c.PostID], c.Timestamp)
	}

	var gaps []float64
	for _, times := range byPost {
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
		for i := 1; i < len(times); i++ {
			gaps = append(gaps, times[i].Sub(times[i-1]).Minutes())
		}
	}
	return gaps
}

// commentGapPenalty charges for uniform gaps (variance under 4) and for
// gaps outside the 5-40 minute window, capped at 3.0 total.
func commentGapPenalty(batch *types.Batch) float64 {
	gaps := commentGaps(batch)
	penalty := 0.0

	if len(gaps) >= 2 && variance(gaps) < 4 {
		penalty += 1.5
	}
	for _, g := range gaps {
		if g < 5 || g > 40 {
			penalty += 0.5
		}
	}
	if penalty > 3.0 {
		penalty = 3.0
	}
	return penalty
}

// postSpreadPenalty charges for weekend-heavy weeks and posts bunched less
// than an hour apart, capped at 3.0 total.
func postSpreadPenalty(batch *types.Batch) float64 {
	if len(batch.Posts) == 0 {
		return 0
	}

	penalty := 0.0

	weekend := 0
	for _, p := range batch.Posts {
		switch p.Timestamp.Weekday() {
		case time.Saturday, time.Sunday:
			weekend++
		}
	}
	if float64(weekend)/float64(len(batch.Posts)) > 0.2 {
		penalty += 1.5
	}

	times := make([]time.Time, 0, len(batch.Posts))
	for _, p := range batch.Posts {
		times = append(times, p.Timestamp)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i := 1; i < len(times); i++ {
		if times[i].Sub(times[i-1]) < time.Hour {
			penalty += 1.5
			break
		}
	}

	if penalty > 3.0 {
		penalty = 3.0
	}
	return penalty
}

// nightActivityPenalty charges 0.5 per post or comment timestamped between
// 02:00 and 06:00, capped at 2.0.
func nightActivityPenalty(batch *types.Batch) float64 {
	penalty := 0.0
	charge := func(t time.Time) {
		if h := t.Hour(); h >= 2 && h < 6 {
			penalty += 0.5
		}
	}
	for _, p := range batch.Posts {
		charge(p.Timestamp)
	}
	for _, c := range batch.Comments {
		charge(c.Timestamp)
	}
	if penalty > 2.0 {
		penalty = 2.0
	}
	return penalty
}
