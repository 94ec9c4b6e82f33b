package selection

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kynrd/threadloom/pkg/types"
)

// Inputs is the immutable reference data a selector works from.
type Inputs struct {
	Personas []types.Persona
	Venues   []types.Venue
	Tags     []types.Tag
}

// Validate checks that the reference data can support generation.
func (in Inputs) Validate() error {
	if len(in.Personas) == 0 {
		return fmt.Errorf("no personas loaded")
	}
	if len(in.Venues) == 0 {
		return fmt.Errorf("no venues loaded")
	}
	if len(in.Tags) == 0 {
		return fmt.Errorf("no tags loaded")
	}
	for _, p := range in.Personas {
		if p.ID == "" || p.Username == "" {
			return fmt.Errorf("persona missing id or username: %+v", p)
		}
		if len(p.PainPoints) == 0 {
			return fmt.Errorf("persona %s has no pain points", p.ID)
		}
	}
	for _, v := range in.Venues {
		if v.ID == "" {
			return fmt.Errorf("venue missing id: %+v", v)
		}
	}
	return nil
}

// Selector builds draft posts from reference data and a state snapshot.
type Selector struct {
	inputs Inputs
	state  *types.StateStore
	rng    *rand.Rand
	now    time.Time
	log    *logrus.Logger
}

// New creates a selector. The rng is injected so selection is reproducible
// under a fixed seed.
func New(inputs Inputs, state *types.StateStore, rng *rand.Rand, now time.Time, log *logrus.Logger) *Selector {
	return &Selector{
		inputs: inputs,
		state:  state,
		rng:    rng,
		now:    now,
		log:    log,
	}
}

// BuildDraft produces batchSize draft posts for the week starting at
// weekStart. Titles and bodies are left empty for the synthesis stage.
// A persona is assigned to at most one post per batch.
func (s *Selector) BuildDraft(batchSize int, weekStart time.Time) ([]types.Post, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	venues := s.selectVenues(batchSize)
	if len(venues) == 0 {
		return nil, fmt.Errorf("no venues available")
	}

	used := make(map[string]bool) // personas assigned in this batch
	posts := make([]types.Post, 0, len(venues))

	for _, venue := range venues {
		persona, err := s.assignPersona(venue, used)
		if err != nil {
			return nil, fmt.Errorf("assign persona for %s: %w", venue.ID, err)
		}
		used[persona.ID] = true

		topic := s.selectTopic(persona, venue)
		format := s.selectFormat()
		tagIDs := s.selectTags(topic, format)

		posts = append(posts, types.Post{
			ID:             uuid.NewString(),
			VenueID:        venue.ID,
			AuthorID:       persona.ID,
			AuthorUsername: persona.Username,
			Topic:          topic,
			Format:         format,
			Intent:         intentFor(format),
			TagIDs:         tagIDs,
		})

		s.log.WithFields(logrus.Fields{
			"venue":   venue.ID,
			"persona": persona.ID,
			"format":  format,
			"tags":    len(tagIDs),
		}).Debug("draft post selected")
	}

	s.distributeTimes(posts, weekStart)
	return posts, nil
}

// distributeTimes spreads post timestamps over weekday working hours with
// jitter. Posts land on distinct days while days remain, keeping cross-post
// gaps comfortably above an hour.
func (s *Selector) distributeTimes(posts []types.Post, weekStart time.Time) {
	weekdays := []int{0, 1, 2, 3, 4} // Mon-Fri offsets from weekStart
	Shuffle(s.rng, weekdays)

	for i := range posts {
		day := weekdays[i%len(weekdays)]
		hour := 9 + s.rng.Intn(11) // 09:00-19:xx
		minute := s.rng.Intn(60)
		posts[i].Timestamp = weekStart.AddDate(0, 0, day).
			Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}
}

// intentFor maps a post format to the intent hint carried on the post.
func intentFor(format types.PostFormat) types.TagIntent {
	switch format {
	case types.FormatComparison:
		return types.IntentComparison
	case types.FormatDirectQuestion, types.FormatRecommendation:
		return types.IntentRecommendation
	default:
		return types.IntentAssistance
	}
}

func daysBetween(now, t time.Time) float64 {
	if t.IsZero() {
		return 1e9
	}
	return now.Sub(t).Hours() / 24
}

func countSince(times []time.Time, cutoff time.Time) int {
	n := 0
	for _, t := range times {
		if t.After(cutoff) {
			n++
		}
	}
	return n
}
