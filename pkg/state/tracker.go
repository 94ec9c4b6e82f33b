// Package state commits accepted batches into long-lived generation state
// and prunes old usage data.
package state

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kynrd/threadloom/pkg/types"
)

// Retention windows.
const (
	historyKeepWeeks   = 12
	historyPruneAbove  = 15
	usageRetentionDays = 60
	topicsUsedCap      = 20
	tagContextsCap     = 20
	rotationLogCap     = 30
	commentGapsCap     = 100
	weekScoresCap      = 52
)

// Tracker applies accepted batches to a StateStore.
type Tracker struct {
	now time.Time
	log *logrus.Logger
}

// NewTracker creates a tracker anchored at now.
func NewTracker(now time.Time, log *logrus.Logger) *Tracker {
	return &Tracker{now: now, log: log}
}

// Commit folds an accepted batch into the store: history, per-entity
// quotas, rotation and pairing patterns, and running quality averages, then
// prunes everything outside the retention windows. A batch must be
// committed at most once.
func (t *Tracker) Commit(store *types.StateStore, batch *types.Batch) {
	store.History.Batches = append(store.History.Batches, *batch)
	store.History.TotalPosts += len(batch.Posts)
	store.History.TotalComments += len(batch.Comments)
	store.History.TotalWeeks++

	t.updatePersonaQuotas(store, batch)
	t.updateVenueQuotas(store, batch)
	t.updateTagQuotas(store, batch)
	t.updatePatterns(store, batch)
	t.updateQualityMetrics(store, batch)
	t.prune(store)

	t.log.WithFields(logrus.Fields{
		"batch":    batch.ID,
		"posts":    len(batch.Posts),
		"comments": len(batch.Comments),
		"weeks":    store.History.TotalWeeks,
	}).Info("batch committed")
}

func (t *Tracker) updatePersonaQuotas(store *types.StateStore, batch *types.Batch) {
	used := make(map[string]bool)

	for _, p := range batch.Posts {
		q := store.Quotas.Persona(p.AuthorID)
		q.PostTimes = append(q.PostTimes, p.Timestamp)
		if p.Timestamp.After(q.LastUsed) {
			q.LastUsed = p.Timestamp
		}
		used[p.AuthorID] = true
	}
	for _, c := range batch.Comments {
		q := store.Quotas.Persona(c.AuthorID)
		q.CommentTimes = append(q.CommentTimes, c.Timestamp)
		if c.Timestamp.After(q.LastUsed) {
			q.LastUsed = c.Timestamp
		}
		used[c.AuthorID] = true
	}

	// Consecutive-week counters: advance for personas in this batch,
	// reset for everyone else.
	for id, q := range store.Quotas.Personas {
		if used[id] {
			q.ConsecutiveWeeks++
		} else {
			q.ConsecutiveWeeks = 0
		}
	}
}

func (t *Tracker) updateVenueQuotas(store *types.StateStore, batch *types.Batch) {
	for _, p := range batch.Posts {
		q := store.Quotas.Venue(p.VenueID)
		q.PostTimes = append(q.PostTimes, p.Timestamp)
		if p.Timestamp.After(q.LastPosted) {
			q.LastPosted = p.Timestamp
		}
		if p.Topic != "" {
			q.TopicsUsed = append(q.TopicsUsed, p.Topic)
		}
	}
}

func (t *Tracker) updateTagQuotas(store *types.StateStore, batch *types.Batch) {
	for _, p := range batch.Posts {
		for _, id := range p.TagIDs {
			q := store.Quotas.Tag(id)
			q.UsageCount++
			if p.Timestamp.After(q.LastUsed) {
				q.LastUsed = p.Timestamp
			}
			if p.Topic != "" {
				q.Contexts = append(q.Contexts, p.Topic)
			}
		}
	}
}

func (t *Tracker) updatePatterns(store *types.StateStore, batch *types.Batch) {
	if store.Patterns.PersonaPairs == nil {
		store.Patterns.PersonaPairs = make(map[string]int)
	}

	authors := make(map[string]string, len(batch.Posts))
	for _, p := range batch.Posts {
		store.Patterns.VenueRotation = append(store.Patterns.VenueRotation, p.VenueID)
		authors[p.ID] = p.AuthorID
	}

	// One pairing increment per distinct author/commenter pair per post.
	counted := make(map[string]bool)
	for _, c := range batch.Comments {
		author, ok := authors[c.PostID]
		if !ok || author == c.AuthorID {
			continue
		}
		key := c.PostID + ":" + types.PairKey(author, c.AuthorID)
		if counted[key] {
			continue
		}
		counted[key] = true
		store.Patterns.PersonaPairs[types.PairKey(author, c.AuthorID)]++
	}

	store.Patterns.CommentGaps = append(store.Patterns.CommentGaps, batchCommentGaps(batch)...)
}

// batchCommentGaps samples the minute gaps between consecutive comments in
// each post's thread.
func batchCommentGaps(batch *types.Batch) []float64 {
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

// updateQualityMetrics folds the batch's dimension scores into the running
// means using a simple incremental average over committed weeks.
func (t *Tracker) updateQualityMetrics(store *types.StateStore, batch *types.Batch) {
	if batch.Score == nil {
		return
	}
	m := &store.QualityMetrics
	n := float64(store.History.TotalWeeks)

	m.AvgNaturalness += (batch.Score.Naturalness - m.AvgNaturalness) / n
	m.AvgConsistency += (batch.Score.Consistency - m.AvgConsistency) / n
	m.AvgDistribution += (batch.Score.Distribution - m.AvgDistribution) / n

	m.WeekScores = append(m.WeekScores, types.WeekScore{
		BatchID:    batch.ID,
		Aggregate:  batch.Score.Aggregate,
		RecordedAt: t.now,
	})
}

// prune drops data outside the retention windows.
func (t *Tracker) prune(store *types.StateStore) {
	if len(store.History.Batches) > historyPruneAbove {
		batches := store.History.Batches
		sort.Slice(batches, func(i, j int) bool {
			return batches[i].StartDate.Before(batches[j].StartDate)
		})
		store.History.Batches = batches[len(batches)-historyKeepWeeks:]
	}

	cutoff := t.now.AddDate(0, 0, -usageRetentionDays)
	for _, q := range store.Quotas.Personas {
		q.PostTimes = pruneTimes(q.PostTimes, cutoff)
		q.CommentTimes = pruneTimes(q.CommentTimes, cutoff)
	}
	for _, q := range store.Quotas.Venues {
		q.PostTimes = pruneTimes(q.PostTimes, cutoff)
		q.TopicsUsed = tail(q.TopicsUsed, topicsUsedCap)
	}
	for _, q := range store.Quotas.Tags {
		q.Contexts = tail(q.Contexts, tagContextsCap)
	}

	store.Patterns.VenueRotation = tail(store.Patterns.VenueRotation, rotationLogCap)
	store.Patterns.CommentGaps = tail(store.Patterns.CommentGaps, commentGapsCap)
	store.QualityMetrics.WeekScores = tail(store.QualityMetrics.WeekScores, weekScoresCap)
}

func pruneTimes(times []time.Time, cutoff time.Time) []time.Time {
	out := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

func tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
