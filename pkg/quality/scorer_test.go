package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynrd/threadloom/pkg/logging"
	"github.com/kynrd/threadloom/pkg/types"
)

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func testPersonas() []types.Persona {
	return []types.Persona{
		{ID: "p1", Username: "maya"},
		{ID: "p2", Username: "dana"},
		{ID: "p3", Username: "priya"},
	}
}

func newTestScorer(state *types.StateStore) *Scorer {
	return New(testPersonas(), state, testNow, logging.NewNop())
}

// naturalBatch builds a batch that should score well everywhere: distinct
// venues and authors, casual text, jittered human-looking timing.
func naturalBatch() *types.Batch {
	mon := time.Date(2026, 8, 31, 10, 17, 0, 0, time.UTC)
	wed := time.Date(2026, 9, 2, 14, 41, 0, 0, time.UTC)
	return &types.Batch{
		ID: "batch-1",
		Posts: []types.Post{
			{
				ID: "post-1", VenueID: "venue-a", AuthorID: "p1",
				Title:     "tracking billable hours is eating my week and I hate every minute of it",
				Body:      "honestly I kinda gave up on spreadsheets. tried three apps and none of them stuck. what do you all actually use",
				Topic:     "tracking billable hours across clients",
				TagIDs:    []string{"tag-1"},
				Timestamp: mon,
			},
			{
				ID: "post-2", VenueID: "venue-b", AuthorID: "p2",
				Title:     "Anyone else drowning in meetings?",
				Body:      "My calendar is SO full I can't get real work done. Blocked off mornings last month and it helped a bit tbh.",
				Topic:     "meeting overload killing deep work",
				TagIDs:    []string{"tag-2", "tag-3"},
				Timestamp: wed,
			},
		},
		Comments: []types.Comment{
			{
				ID: "c1", PostID: "post-1", AuthorID: "p2", Role: types.RoleInitialResponse, Depth: 1,
				Text:      "I ran into this too. switched to a timer on my phone and just accepted it won't be perfect",
				Timestamp: mon.Add(14 * time.Minute),
			},
			{
				ID: "c2", PostID: "post-1", ParentID: "c1", AuthorID: "p3", Role: types.RoleAgreement, Depth: 2,
				Text:      "yeah same here",
				Timestamp: mon.Add(37 * time.Minute),
			},
			{
				ID: "c3", PostID: "post-2", AuthorID: "p1", Role: types.RoleInitialResponse, Depth: 1,
				Text:      "lol I feel this. declining anything without an agenda was the only thing that worked for me",
				Timestamp: wed.Add(22 * time.Minute),
			},
		},
	}
}

func TestAggregateWeights(t *testing.T) {
	q := &types.QualityScore{
		Naturalness:  9.0,
		Distribution: 8.0,
		Consistency:  8.0,
		Diversity:    7.0,
		Timing:       8.0,
	}
	assert.Equal(t, 8.2, round1(Aggregate(q)))
}

func TestScoreNaturalBatch(t *testing.T) {
	score := newTestScorer(types.NewStateStore()).Score(naturalBatch())

	assert.GreaterOrEqual(t, score.Naturalness, 8.0)
	assert.Equal(t, 10.0, score.Distribution)
	assert.GreaterOrEqual(t, score.Diversity, 9.9)
	assert.GreaterOrEqual(t, score.Timing, 9.0)
	assert.False(t, score.HasCritical())
	assert.True(t, score.MeetsThreshold(7.0))
}

func TestScoreRoundsAndClamps(t *testing.T) {
	score := newTestScorer(types.NewStateStore()).Score(naturalBatch())

	for _, v := range []float64{
		score.Naturalness, score.Distribution, score.Consistency,
		score.Diversity, score.Timing, score.Aggregate,
	} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 10.0)
		assert.Equal(t, round1(v), v, "value %v not rounded to one decimal", v)
	}
}

func TestDuplicateVenueIsCritical(t *testing.T) {
	batch := naturalBatch()
	batch.Posts[1].VenueID = batch.Posts[0].VenueID

	score := newTestScorer(types.NewStateStore()).Score(batch)

	assert.LessOrEqual(t, score.Distribution, 7.0)

	found := false
	for _, f := range score.Flags {
		if f.Category == "distribution" && f.Severity == types.SeverityCritical {
			found = true
		}
	}
	assert.True(t, found, "expected a critical distribution flag, got %+v", score.Flags)
	assert.False(t, score.MeetsThreshold(0))
}

func TestNaturalnessPenalizesSterileText(t *testing.T) {
	sterile := naturalBatch()
	sterile.Posts[0].Title = "An Inquiry Regarding Time Tracking Methods."
	sterile.Posts[0].Body = "Furthermore, I have evaluated several solutions. In conclusion, none were satisfactory."
	sterile.Posts[1].Title = "A Question About Meeting Schedule Management."
	sterile.Posts[1].Body = "Moreover, the volume of meetings is excessive. Consequently, productivity suffers."
	for i := range sterile.Comments {
		sterile.Comments[i].Text = "Thank you for sharing. That is a very insightful perspective on the matter."
	}

	s := newTestScorer(types.NewStateStore())
	assert.Less(t, s.Score(sterile).Naturalness, s.Score(naturalBatch()).Naturalness)
}

func TestForcedContentPenalty(t *testing.T) {
	batch := naturalBatch()
	assert.Equal(t, 0.0, forcedContentPenalty(batch))

	batch.Posts[0].Body = "This app is the best solution for tracking and a game changer for freelancers."
	batch.Posts[1].TagIDs = []string{"a", "b", "c", "d"}
	assert.Equal(t, 3.0, forcedContentPenalty(batch))
}

func TestPersonaUsageRatio(t *testing.T) {
	batch := naturalBatch()
	assert.InDelta(t, 2.0, personaUsageRatio(batch), 1e-9) // p1 and p2 twice, p3 once

	// Pile more activity onto p1.
	for i := 0; i < 4; i++ {
		batch.Comments = append(batch.Comments, types.Comment{PostID: "post-2", AuthorID: "p1"})
	}
	score := newTestScorer(types.NewStateStore()).scoreDistribution(batch)
	assert.LessOrEqual(t, score, 8.0)
}

func TestConsistencyFlagsRegisterMixing(t *testing.T) {
	batch := naturalBatch()
	batch.Posts[0].Body = "Our stakeholder wants this deliverable by the quarterly review. Also my professor moved the exam and the homework is due."

	s := newTestScorer(types.NewStateStore())
	baseline := s.scoreConsistency(naturalBatch())
	mixed := s.scoreConsistency(batch)
	assert.InDelta(t, baseline-0.5, mixed, 1e-9)
}

func TestDiversityTopicOverlap(t *testing.T) {
	state := types.NewStateStore()
	state.History.Batches = []types.Batch{{
		ID:        "prior",
		StartDate: testNow.AddDate(0, 0, -7),
		Posts: []types.Post{
			{Topic: "tracking billable hours across clients"}, // exact repeat of post-1's topic
		},
	}}

	s := newTestScorer(state)
	assert.InDelta(t, 1.5, s.topicOverlapPenalty(naturalBatch()), 1e-9)
	assert.LessOrEqual(t, s.Score(naturalBatch()).Diversity, 8.5)
}

func TestDiversityRotationPenalty(t *testing.T) {
	state := types.NewStateStore()
	state.Patterns.VenueRotation = []string{"venue-a", "venue-b"}

	s := newTestScorer(state)
	// Both current venues are warm; 2.0 each capped at 3.0.
	assert.Equal(t, 3.0, s.rotationPenalty(naturalBatch()))
}

func TestDiversityPairingPenalty(t *testing.T) {
	state := types.NewStateStore()
	state.Patterns.PersonaPairs[types.PairKey("p1", "p2")] = 2

	s := newTestScorer(state)
	// The p1/p2 pair occurs on both posts but is charged once.
	assert.Equal(t, 1.0, s.pairingHistoryPenalty(naturalBatch()))
}

func TestTimingUniformGaps(t *testing.T) {
	batch := naturalBatch()
	base := batch.Posts[0].Timestamp
	// Three comments on one post exactly 15 minutes apart.
	batch.Comments = []types.Comment{
		{ID: "c1", PostID: "post-1", AuthorID: "p2", Timestamp: base.Add(15 * time.Minute)},
		{ID: "c2", PostID: "post-1", AuthorID: "p3", Timestamp: base.Add(30 * time.Minute)},
		{ID: "c3", PostID: "post-1", AuthorID: "p2", Timestamp: base.Add(45 * time.Minute)},
	}

	assert.Equal(t, 1.5, commentGapPenalty(batch))

	score := newTestScorer(types.NewStateStore()).Score(batch)
	found := false
	for _, f := range score.Flags {
		if f.Category == "timing" && f.Severity == types.SeverityWarning {
			found = true
		}
	}
	assert.True(t, found, "expected a uniform-gap timing flag")
}

func TestTimingGapWindow(t *testing.T) {
	batch := naturalBatch()
	base := batch.Posts[0].Timestamp
	batch.Comments = []types.Comment{
		{ID: "c1", PostID: "post-1", Timestamp: base.Add(2 * time.Minute)},
		{ID: "c2", PostID: "post-1", Timestamp: base.Add(4 * time.Minute)}, // 2 min gap, too fast
		{ID: "c3", PostID: "post-1", Timestamp: base.Add(3 * time.Hour)},   // way too slow
	}

	// Two out-of-window gaps at 0.5 each plus high variance, no uniformity charge.
	assert.Equal(t, 1.0, commentGapPenalty(batch))
}

func TestTimingWeekendAndBunching(t *testing.T) {
	batch := naturalBatch()
	sat := time.Date(2026, 9, 5, 11, 0, 0, 0, time.UTC)
	batch.Posts[0].Timestamp = sat
	batch.Posts[1].Timestamp = sat.Add(30 * time.Minute)
	batch.Comments = nil

	// Weekend ratio 1.0 and a sub-hour gap: 1.5 + 1.5.
	assert.Equal(t, 3.0, postSpreadPenalty(batch))
}

func TestTimingNightActivity(t *testing.T) {
	batch := naturalBatch()
	night := time.Date(2026, 9, 1, 3, 30, 0, 0, time.UTC)
	batch.Posts[0].Timestamp = night
	batch.Comments[0].Timestamp = night.Add(10 * time.Minute)

	assert.Equal(t, 1.0, nightActivityPenalty(batch))
}

func TestVariance(t *testing.T) {
	assert.Equal(t, 0.0, variance(nil))
	assert.Equal(t, 0.0, variance([]float64{5, 5, 5}))
	assert.InDelta(t, 2.0/3.0, variance([]float64{1, 2, 3}), 1e-9)
}

func TestRound1AndClamp(t *testing.T) {
	assert.Equal(t, 7.5, round1(7.45))
	assert.Equal(t, 7.4, round1(7.44))
	assert.Equal(t, 0.0, clampScore(-1.2))
	assert.Equal(t, 10.0, clampScore(11.0))
}

func TestTextHelpers(t *testing.T) {
	assert.True(t, hasLowercaseStart("first one. second starts lower"))
	assert.False(t, hasLowercaseStart("First one. Second too."))

	assert.True(t, missingTerminalPunctuation("trails off like this"))
	assert.False(t, missingTerminalPunctuation("ends properly."))
	assert.False(t, missingTerminalPunctuation("  "))

	assert.True(t, hasInformalCaps("this is SO annoying."))
	assert.False(t, hasInformalCaps("This is fine."))
	assert.False(t, hasInformalCaps("NASA launched."), "sentence-leading caps do not count")

	assert.InDelta(t, 3.0, meanSentenceLength("one two three. four five six."), 1e-9)
	require.Len(t, splitSentences("a. b! c?"), 3)
}
