package synth

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynrd/threadloom/pkg/logging"
	"github.com/kynrd/threadloom/pkg/types"
)

func TestProcessAppliesContractions(t *testing.T) {
	voice := types.VoiceProfile{} // zero casualness, zero typo rate
	rng := rand.New(rand.NewSource(1))

	out := Process("I am not sure it is broken. Cannot say I would mind.", voice, rng)
	assert.Equal(t, "I'm not sure it's broken. Can't say I'd mind.", out)
}

func TestProcessZeroVoiceIsDeterministic(t *testing.T) {
	voice := types.VoiceProfile{}
	in := "Plain text with no transformations pending."

	for seed := int64(0); seed < 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		assert.Equal(t, in, Process(in, voice, rng))
	}
}

func TestProcessNoTyposAtZeroRate(t *testing.T) {
	voice := types.VoiceProfile{Casualness: 0, TypoRate: 0}
	in := "absolutely nothing should change in these words"

	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		assert.Equal(t, in, Process(in, voice, rng))
	}
}

func TestProcessEmptyText(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, "", Process("", types.VoiceProfile{Casualness: 1}, rng))
	assert.Equal(t, "   ", Process("   ", types.VoiceProfile{Casualness: 1}, rng))
}

func TestLowercaseSentenceStarts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := lowercaseSentenceStarts("The first. Another one. I agree.", 1.0, rng)

	assert.Equal(t, "the first. another one. I agree.", out, "pronoun I is preserved")
}

func TestInjectTyposPreservesWordShape(t *testing.T) {
	in := "something meaningful happened yesterday afternoon"
	words := strings.Fields(in)

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		out := injectTypos(in, 1.0, rng)
		outWords := strings.Fields(out)

		require.Len(t, outWords, len(words), "seed %d", seed)
		for i, w := range outWords {
			orig := words[i]
			assert.Equal(t, orig[0], w[0], "seed %d: first letter changed", seed)
			assert.Equal(t, orig[len(orig)-1], w[len(w)-1], "seed %d: last letter changed", seed)

			a := strings.Split(orig, "")
			b := strings.Split(w, "")
			sort.Strings(a)
			sort.Strings(b)
			assert.Equal(t, a, b, "seed %d: letters lost or invented", seed)
		}
	}
}

func TestInjectTyposSkipsShortWords(t *testing.T) {
	in := "a an the it"
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		assert.Equal(t, in, injectTypos(in, 1.0, rng))
	}
}

func TestTemplatesCoverAllFormats(t *testing.T) {
	ctx := context.Background()
	formats := []types.PostFormat{
		types.FormatDirectQuestion, types.FormatComparison,
		types.FormatRecommendation, types.FormatExperience,
	}
	for _, f := range formats {
		title, body, err := Templates{}.PostText(ctx, PostRequest{Topic: "tracking time", Format: f})
		require.NoError(t, err)
		assert.NotEmpty(t, title, "format %s", f)
		assert.NotEmpty(t, body, "format %s", f)
		assert.Contains(t, title+" "+body, "tracking time")
	}

	roles := []types.CommentRole{
		types.RoleInitialResponse, types.RoleAgreement,
		types.RoleOPEngagement, types.RoleAddition,
	}
	for _, r := range roles {
		text, err := Templates{}.CommentText(ctx, CommentRequest{Role: r})
		require.NoError(t, err)
		assert.NotEmpty(t, text, "role %s", r)
	}
}

// failingSynth always errors, forcing the filler onto templates.
type failingSynth struct{}

func (failingSynth) PostText(context.Context, PostRequest) (string, string, error) {
	return "", "", errors.New("provider down")
}

func (failingSynth) CommentText(context.Context, CommentRequest) (string, error) {
	return "", errors.New("provider down")
}

func testFillBatch() *types.Batch {
	return &types.Batch{
		ID: "batch-1",
		Posts: []types.Post{
			{ID: "post-1", VenueID: "venue-a", AuthorID: "p1", Topic: "tracking billable hours", Format: types.FormatDirectQuestion},
			{ID: "post-2", VenueID: "venue-b", AuthorID: "p2", Topic: "meeting overload", Format: types.FormatExperience},
		},
		Comments: []types.Comment{
			{ID: "c1", PostID: "post-1", AuthorID: "p2", Role: types.RoleInitialResponse, Depth: 1},
			{ID: "c2", PostID: "post-1", ParentID: "c1", AuthorID: "p3", Role: types.RoleAgreement, Depth: 2},
			{ID: "c3", PostID: "post-2", AuthorID: "p1", Role: types.RoleInitialResponse, Depth: 1},
		},
	}
}

func fillerPersonas() []types.Persona {
	return []types.Persona{
		{ID: "p1", Username: "maya"},
		{ID: "p2", Username: "dana"},
		{ID: "p3", Username: "priya"},
	}
}

func fillerVenues() []types.Venue {
	return []types.Venue{{ID: "venue-a"}, {ID: "venue-b"}}
}

func TestFillPopulatesEverything(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := NewFiller(Templates{}, fillerPersonas(), fillerVenues(), rng, logging.NewNop())

	batch := testFillBatch()
	f.Fill(context.Background(), batch)

	for _, p := range batch.Posts {
		assert.NotEmpty(t, p.Title, "post %s", p.ID)
		assert.NotEmpty(t, p.Body, "post %s", p.ID)
	}
	for _, c := range batch.Comments {
		assert.NotEmpty(t, c.Text, "comment %s", c.ID)
	}
}

func TestFillFallsBackOnProviderError(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := NewFiller(failingSynth{}, fillerPersonas(), fillerVenues(), rng, logging.NewNop())

	batch := testFillBatch()
	f.Fill(context.Background(), batch)

	for _, p := range batch.Posts {
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Body)
	}
	for _, c := range batch.Comments {
		assert.NotEmpty(t, c.Text)
	}
}

func TestFillIsDeterministicPerSeed(t *testing.T) {
	run := func() *types.Batch {
		rng := rand.New(rand.NewSource(99))
		personas := fillerPersonas()
		// Give one persona an aggressive voice so post-processing actually fires.
		personas[0].Voice = types.VoiceProfile{Casualness: 0.9, TypoRate: 0.5}
		f := NewFiller(Templates{}, personas, fillerVenues(), rng, logging.NewNop())
		batch := testFillBatch()
		f.Fill(context.Background(), batch)
		return batch
	}

	a, b := run(), run()
	for i := range a.Posts {
		assert.Equal(t, a.Posts[i].Title, b.Posts[i].Title)
		assert.Equal(t, a.Posts[i].Body, b.Posts[i].Body)
	}
	for i := range a.Comments {
		assert.Equal(t, a.Comments[i].Text, b.Comments[i].Text)
	}
}
