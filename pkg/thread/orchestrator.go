// Package thread builds comment threads for draft posts using a fixed
// interaction pattern with stochastic timing.
package thread

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kynrd/threadloom/pkg/selection"
	"github.com/kynrd/threadloom/pkg/textsim"
	"github.com/kynrd/threadloom/pkg/types"
)

// Engagement tiers. Each tier fixes how many commenters take part in the
// interaction pattern.
type tier struct {
	name       string
	commenters int
	weight     float64
}

var tiers = []tier{
	{"light", 1, 0.45},
	{"medium", 2, 0.35},
	{"high", 3, 0.20},
}

// Probability that the post author replies within the thread.
const authorReplyProbability = 0.4

// commenter ranking weights
const (
	commenterAuthenticityWeight = 0.6
	commenterRestWeight         = 0.25
	commenterPairingWeight      = 0.15
)

// Orchestrator builds comment trees for a batch of draft posts.
type Orchestrator struct {
	personas []types.Persona
	venues   map[string]types.Venue
	state    *types.StateStore
	rng      *rand.Rand
	now      time.Time
	log      *logrus.Logger
}

// New creates an orchestrator over the given cast and venues.
func New(personas []types.Persona, venues []types.Venue, state *types.StateStore, rng *rand.Rand, now time.Time, log *logrus.Logger) *Orchestrator {
	vm := make(map[string]types.Venue, len(venues))
	for _, v := range venues {
		vm[v.ID] = v
	}
	return &Orchestrator{
		personas: personas,
		venues:   vm,
		state:    state,
		rng:      rng,
		now:      now,
		log:      log,
	}
}

// BuildThreads decides engagement for each post and instantiates the
// interaction pattern. It sets each post's TargetEngagement hint in place
// and returns all comments. Comment text is left empty for the synthesis
// stage.
func (o *Orchestrator) BuildThreads(posts []types.Post) []types.Comment {
	comments := make([]types.Comment, 0)
	for i := range posts {
		thread := o.buildThread(&posts[i])
		comments = append(comments, thread...)
	}
	return comments
}

func (o *Orchestrator) buildThread(post *types.Post) []types.Comment {
	if o.rng.Float64() >= o.engagementProbability(*post) {
		post.TargetEngagement = "none"
		return nil
	}

	t := o.pickTier()
	post.TargetEngagement = t.name
	targetDepth := 1 + o.rng.Intn(3)
	authorReplies := o.rng.Float64() < authorReplyProbability

	ranked := o.rankCommenters(*post)
	n := t.commenters
	if n > len(ranked) {
		n = len(ranked)
	}
	if n == 0 {
		post.TargetEngagement = "none"
		return nil
	}

	var out []types.Comment

	// First-ranked commenter opens the thread.
	initial := o.newComment(post, ranked[0], types.RoleInitialResponse, "", 1,
		post.Timestamp.Add(o.jitter(8, 25)))
	out = append(out, initial)

	// Second commenter agrees in reply, when the depth budget allows.
	var agreement *types.Comment
	if n >= 2 && targetDepth >= 2 {
		c := o.newComment(post, ranked[1], types.RoleAgreement, initial.ID, 2,
			initial.Timestamp.Add(o.jitter(10, 20)))
		out = append(out, c)
		agreement = &out[len(out)-1]
	}

	// The author engages with the deepest reply still inside the budget.
	if authorReplies {
		parent := &out[0]
		if agreement != nil && agreement.Depth < targetDepth {
			parent = agreement
		}
		op := types.Comment{
			ID:        uuid.NewString(),
			PostID:    post.ID,
			ParentID:  parent.ID,
			AuthorID:  post.AuthorID,
			Username:  post.AuthorUsername,
			Role:      types.RoleOPEngagement,
			Depth:     parent.Depth + 1,
			Timestamp: parent.Timestamp.Add(o.jitter(8, 18)),
		}
		out = append(out, op)
	}

	// With three commenters there is a coin-flip chance of a late,
	// unparented addition.
	if n >= 3 && o.rng.Float64() < 0.5 {
		c := o.newComment(post, ranked[2], types.RoleAddition, "", 1,
			post.Timestamp.Add(o.jitter(20, 40)))
		out = append(out, c)
	}

	o.log.WithFields(logrus.Fields{
		"post":     post.ID,
		"tier":     t.name,
		"comments": len(out),
	}).Debug("thread built")

	return out
}

func (o *Orchestrator) newComment(post *types.Post, p types.Persona, role types.CommentRole, parentID string, depth int, ts time.Time) types.Comment {
	return types.Comment{
		ID:        uuid.NewString(),
		PostID:    post.ID,
		ParentID:  parentID,
		AuthorID:  p.ID,
		Username:  p.Username,
		Role:      role,
		Depth:     depth,
		Timestamp: ts,
	}
}

// engagementProbability combines venue activity, tag count and recent
// comment volume, capped at 0.98.
func (o *Orchestrator) engagementProbability(post types.Post) float64 {
	prob := 0.5
	if v, ok := o.venues[post.VenueID]; ok {
		prob = v.ActivityLevel
	}
	if len(post.TagIDs) > 1 {
		prob += 0.15
	}
	if o.recentCommentCount(14) < 10 {
		prob += 0.20
	}
	if prob > 0.98 {
		prob = 0.98
	}
	return prob
}

// recentCommentCount counts committed comments in the trailing days.
func (o *Orchestrator) recentCommentCount(days int) int {
	cutoff := o.now.AddDate(0, 0, -days)
	n := 0
	for _, b := range o.state.History.Batches {
		for _, c := range b.Comments {
			if c.Timestamp.After(cutoff) {
				n++
			}
		}
	}
	return n
}

func (o *Orchestrator) pickTier() tier {
	picked, _ := selection.WeightedPick(o.rng, tiers, func(t tier) float64 {
		return t.weight
	})
	return picked
}

// rankCommenters orders personas (excluding the post author) by topical
// authenticity, commenting rest and pairing history.
func (o *Orchestrator) rankCommenters(post types.Post) []types.Persona {
	cands := make([]selection.Candidate[types.Persona], 0, len(o.personas))
	for _, p := range o.personas {
		if p.ID == post.AuthorID {
			continue
		}
		score := o.commenterAuthenticity(p, post)*commenterAuthenticityWeight +
			o.commenterRestBonus(p.ID)*commenterRestWeight -
			o.pairingPenalty(post.AuthorID, p.ID)*commenterPairingWeight
		cands = append(cands, selection.Candidate[types.Persona]{Item: p, Score: score})
	}
	selection.SortByScore(cands)

	out := make([]types.Persona, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Item)
	}
	return out
}

// commenterAuthenticity measures pain-point keyword overlap with the post
// topic, normalized to [0,1].
func (o *Orchestrator) commenterAuthenticity(p types.Persona, post types.Post) float64 {
	topicTokens := textsim.Tokenize(post.Topic)
	if len(topicTokens) == 0 {
		return 0
	}
	combined := strings.ToLower(strings.Join(p.PainPoints, " "))
	hits := 0
	for _, tok := range topicTokens {
		if strings.Contains(combined, tok) {
			hits++
		}
	}
	return float64(hits) / float64(len(topicTokens))
}

// commenterRestBonus rewards time since the persona last commented.
func (o *Orchestrator) commenterRestBonus(personaID string) float64 {
	q, ok := o.state.Quotas.Personas[personaID]
	if !ok || len(q.CommentTimes) == 0 {
		return 0.3
	}
	last := q.CommentTimes[len(q.CommentTimes)-1]
	days := o.now.Sub(last).Hours() / 24
	switch {
	case days >= 7:
		return 0.3
	case days >= 3:
		return 0.15
	default:
		return 0
	}
}

// pairingPenalty rises with historical author/commenter co-occurrence.
func (o *Orchestrator) pairingPenalty(authorID, commenterID string) float64 {
	count := o.state.Patterns.PairCount(authorID, commenterID)
	switch {
	case count > 2:
		return 0.3
	case count > 1:
		return 0.15
	default:
		return 0
	}
}

// jitter returns a random duration between lo and hi minutes.
func (o *Orchestrator) jitter(lo, hi int) time.Duration {
	minutes := lo + o.rng.Intn(hi-lo+1)
	return time.Duration(minutes) * time.Minute
}
