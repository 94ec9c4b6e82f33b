package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynrd/threadloom/pkg/logging"
	"github.com/kynrd/threadloom/pkg/types"
)

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func testBatch(id string, start time.Time) *types.Batch {
	return &types.Batch{
		ID:        id,
		StartDate: start,
		Posts: []types.Post{
			{
				ID: id + "-post-1", VenueID: "venue-a", AuthorID: "p1",
				Topic: "tracking billable hours", TagIDs: []string{"tag-1", "tag-2"},
				Timestamp: start.Add(10 * time.Hour),
			},
			{
				ID: id + "-post-2", VenueID: "venue-b", AuthorID: "p2",
				Topic: "meeting overload", TagIDs: []string{"tag-1"},
				Timestamp: start.Add(34 * time.Hour),
			},
		},
		Comments: []types.Comment{
			{ID: id + "-c1", PostID: id + "-post-1", AuthorID: "p2", Timestamp: start.Add(10*time.Hour + 15*time.Minute)},
			{ID: id + "-c2", PostID: id + "-post-1", AuthorID: "p3", Timestamp: start.Add(10*time.Hour + 40*time.Minute)},
			{ID: id + "-c3", PostID: id + "-post-2", AuthorID: "p1", Timestamp: start.Add(34*time.Hour + 20*time.Minute)},
		},
		Score: &types.QualityScore{
			Naturalness: 9.0, Distribution: 8.0, Consistency: 8.5, Diversity: 7.5, Timing: 9.0,
			Aggregate: 8.5,
		},
	}
}

func newTestTracker() *Tracker {
	return NewTracker(testNow, logging.NewNop())
}

func TestCommitUpdatesHistory(t *testing.T) {
	store := types.NewStateStore()
	batch := testBatch("b1", testNow.AddDate(0, 0, -7))

	newTestTracker().Commit(store, batch)

	assert.Equal(t, 1, store.History.TotalWeeks)
	assert.Equal(t, 2, store.History.TotalPosts)
	assert.Equal(t, 3, store.History.TotalComments)
	require.Len(t, store.History.Batches, 1)
	assert.Equal(t, "b1", store.History.Batches[0].ID)
}

func TestCommitUpdatesPersonaQuotas(t *testing.T) {
	store := types.NewStateStore()
	batch := testBatch("b1", testNow.AddDate(0, 0, -7))

	newTestTracker().Commit(store, batch)

	p1 := store.Quotas.Personas["p1"]
	require.NotNil(t, p1)
	assert.Len(t, p1.PostTimes, 1)
	assert.Len(t, p1.CommentTimes, 1)
	assert.Equal(t, batch.Comments[2].Timestamp, p1.LastUsed, "last used tracks the latest activity")
	assert.Equal(t, 1, p1.ConsecutiveWeeks)

	p3 := store.Quotas.Personas["p3"]
	require.NotNil(t, p3)
	assert.Empty(t, p3.PostTimes)
	assert.Len(t, p3.CommentTimes, 1)
}

func TestConsecutiveWeeksResetForIdlePersonas(t *testing.T) {
	store := types.NewStateStore()
	store.Quotas.Persona("p9").ConsecutiveWeeks = 4

	tracker := newTestTracker()
	tracker.Commit(store, testBatch("b1", testNow.AddDate(0, 0, -14)))
	tracker.Commit(store, testBatch("b2", testNow.AddDate(0, 0, -7)))

	assert.Equal(t, 2, store.Quotas.Personas["p1"].ConsecutiveWeeks)
	assert.Equal(t, 0, store.Quotas.Personas["p9"].ConsecutiveWeeks)
}

func TestCommitUpdatesVenueAndTagQuotas(t *testing.T) {
	store := types.NewStateStore()
	batch := testBatch("b1", testNow.AddDate(0, 0, -7))

	newTestTracker().Commit(store, batch)

	va := store.Quotas.Venues["venue-a"]
	require.NotNil(t, va)
	assert.Equal(t, batch.Posts[0].Timestamp, va.LastPosted)
	assert.Equal(t, []string{"tracking billable hours"}, va.TopicsUsed)

	tag1 := store.Quotas.Tags["tag-1"]
	require.NotNil(t, tag1)
	assert.Equal(t, 2, tag1.UsageCount)
	assert.Len(t, tag1.Contexts, 2)

	tag2 := store.Quotas.Tags["tag-2"]
	require.NotNil(t, tag2)
	assert.Equal(t, 1, tag2.UsageCount)
}

func TestCommitUpdatesPatterns(t *testing.T) {
	store := types.NewStateStore()
	batch := testBatch("b1", testNow.AddDate(0, 0, -7))

	newTestTracker().Commit(store, batch)

	assert.Equal(t, []string{"venue-a", "venue-b"}, store.Patterns.VenueRotation)

	// p1/p2 co-occur on both posts: once per post.
	assert.Equal(t, 2, store.Patterns.PairCount("p1", "p2"))
	assert.Equal(t, 1, store.Patterns.PairCount("p1", "p3"))

	// Gaps only within a thread: 25 minutes on post-1.
	require.Len(t, store.Patterns.CommentGaps, 1)
	assert.InDelta(t, 25.0, store.Patterns.CommentGaps[0], 1e-9)
}

func TestCommitUpdatesQualityMetrics(t *testing.T) {
	store := types.NewStateStore()
	tracker := newTestTracker()

	tracker.Commit(store, testBatch("b1", testNow.AddDate(0, 0, -14)))
	assert.InDelta(t, 9.0, store.QualityMetrics.AvgNaturalness, 1e-9)

	b2 := testBatch("b2", testNow.AddDate(0, 0, -7))
	b2.Score.Naturalness = 7.0
	tracker.Commit(store, b2)

	assert.InDelta(t, 8.0, store.QualityMetrics.AvgNaturalness, 1e-9)
	require.Len(t, store.QualityMetrics.WeekScores, 2)
	assert.Equal(t, "b2", store.QualityMetrics.WeekScores[1].BatchID)
	assert.Equal(t, 8.5, store.QualityMetrics.WeekScores[1].Aggregate)
}

func TestCommitWithoutScoreSkipsMetrics(t *testing.T) {
	store := types.NewStateStore()
	batch := testBatch("b1", testNow.AddDate(0, 0, -7))
	batch.Score = nil

	newTestTracker().Commit(store, batch)

	assert.Equal(t, 0.0, store.QualityMetrics.AvgNaturalness)
	assert.Empty(t, store.QualityMetrics.WeekScores)
	assert.Equal(t, 1, store.History.TotalWeeks)
}

func TestPruneHistoryKeepsRecentWeeks(t *testing.T) {
	store := types.NewStateStore()
	for i := 0; i < 15; i++ {
		store.History.Batches = append(store.History.Batches,
			types.Batch{ID: fmt.Sprintf("old-%d", i), StartDate: testNow.AddDate(0, 0, -7*(20-i))})
	}

	newTestTracker().Commit(store, testBatch("fresh", testNow.AddDate(0, 0, -7)))

	require.Len(t, store.History.Batches, historyKeepWeeks)
	last := store.History.Batches[len(store.History.Batches)-1]
	assert.Equal(t, "fresh", last.ID, "newest batch survives the prune")
}

func TestPruneDropsStaleUsageTimes(t *testing.T) {
	store := types.NewStateStore()
	q := store.Quotas.Persona("p1")
	stale := testNow.AddDate(0, 0, -90)
	recent := testNow.AddDate(0, 0, -10)
	q.PostTimes = []time.Time{stale, recent}
	q.CommentTimes = []time.Time{stale}

	newTestTracker().Commit(store, testBatch("b1", testNow.AddDate(0, 0, -7)))

	for _, ts := range q.PostTimes {
		assert.True(t, ts.After(testNow.AddDate(0, 0, -usageRetentionDays)),
			"stale timestamp %v survived prune", ts)
	}
	// Only the fresh comment from the batch remains.
	require.Len(t, q.CommentTimes, 1)
	assert.True(t, q.CommentTimes[0].After(recent))
}

func TestPruneCapsPatternLogs(t *testing.T) {
	store := types.NewStateStore()
	for i := 0; i < 50; i++ {
		store.Patterns.VenueRotation = append(store.Patterns.VenueRotation, "venue-x")
		store.Patterns.CommentGaps = append(store.Patterns.CommentGaps, 15)
	}
	store.Quotas.Venue("venue-a").TopicsUsed = make([]string, 30)

	newTestTracker().Commit(store, testBatch("b1", testNow.AddDate(0, 0, -7)))

	assert.Len(t, store.Patterns.VenueRotation, rotationLogCap)
	assert.LessOrEqual(t, len(store.Patterns.CommentGaps), commentGapsCap)
	assert.Len(t, store.Quotas.Venues["venue-a"].TopicsUsed, topicsUsedCap)
}
