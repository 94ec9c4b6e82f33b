// Package synth fills draft posts and comments with text. Synthesis is
// delegated to a provider; the engine owns post-processing and fallback.
package synth

import (
	"context"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kynrd/threadloom/pkg/types"
)

// PostRequest carries everything a provider needs to write one post.
type PostRequest struct {
	Persona types.Persona
	Venue   types.Venue
	Topic   string
	Format  types.PostFormat
}

// CommentRequest carries everything a provider needs to write one comment.
type CommentRequest struct {
	Persona    types.Persona
	Role       types.CommentRole
	PostTitle  string
	PostBody   string
	ParentText string
}

// Synthesizer produces prose for posts and comments.
type Synthesizer interface {
	PostText(ctx context.Context, req PostRequest) (title, body string, err error)
	CommentText(ctx context.Context, req CommentRequest) (string, error)
}

// Filler drives text synthesis for a whole batch. Synthesis calls for
// different items run concurrently; post-processing runs afterwards in
// batch order so the injected rng stays deterministic.
type Filler struct {
	synth    Synthesizer
	personas map[string]types.Persona
	venues   map[string]types.Venue
	rng      *rand.Rand
	log      *logrus.Logger
}

// NewFiller creates a filler over the given provider and reference data.
func NewFiller(s Synthesizer, personas []types.Persona, venues []types.Venue, rng *rand.Rand, log *logrus.Logger) *Filler {
	pm := make(map[string]types.Persona, len(personas))
	for _, p := range personas {
		pm[p.ID] = p
	}
	vm := make(map[string]types.Venue, len(venues))
	for _, v := range venues {
		vm[v.ID] = v
	}
	return &Filler{synth: s, personas: pm, venues: vm, rng: rng, log: log}
}

// Fill populates every post title/body and comment text in the batch.
// Provider errors fall back to templates per item and never abort the
// attempt.
func (f *Filler) Fill(ctx context.Context, batch *types.Batch) {
	var wg sync.WaitGroup

	for i := range batch.Posts {
		wg.Add(1)
		go func(p *types.Post) {
			defer wg.Done()
			f.fillPost(ctx, p)
		}(&batch.Posts[i])
	}

	// Comments need their post and parent text; posts resolve first.
	wg.Wait()

	parentText := make(map[string]*string, len(batch.Comments))
	for i := range batch.Comments {
		parentText[batch.Comments[i].ID] = &batch.Comments[i].Text
	}
	postByID := make(map[string]*types.Post, len(batch.Posts))
	for i := range batch.Posts {
		postByID[batch.Posts[i].ID] = &batch.Posts[i]
	}

	// Fill comments depth by depth so replies can quote their parents.
	maxDepth := 0
	for _, c := range batch.Comments {
		if c.Depth > maxDepth {
			maxDepth = c.Depth
		}
	}
	for depth := 1; depth <= maxDepth; depth++ {
		for i := range batch.Comments {
			c := &batch.Comments[i]
			if c.Depth != depth {
				continue
			}
			wg.Add(1)
			go func(c *types.Comment) {
				defer wg.Done()
				parent := ""
				if c.ParentID != "" {
					if t, ok := parentText[c.ParentID]; ok {
						parent = *t
					}
				}
				f.fillComment(ctx, c, postByID[c.PostID], parent)
			}(c)
		}
		wg.Wait()
	}

	// Post-processing in stable order, single-threaded.
	for i := range batch.Posts {
		p := &batch.Posts[i]
		voice := f.personas[p.AuthorID].Voice
		p.Title = Process(p.Title, voice, f.rng)
		p.Body = Process(p.Body, voice, f.rng)
	}
	for i := range batch.Comments {
		c := &batch.Comments[i]
		voice := f.personas[c.AuthorID].Voice
		c.Text = Process(c.Text, voice, f.rng)
	}
}

func (f *Filler) fillPost(ctx context.Context, p *types.Post) {
	req := PostRequest{
		Persona: f.personas[p.AuthorID],
		Venue:   f.venues[p.VenueID],
		Topic:   p.Topic,
		Format:  p.Format,
	}
	title, body, err := f.synth.PostText(ctx, req)
	if err != nil {
		f.log.WithError(err).WithField("post", p.ID).Warn("post synthesis failed, using template")
		title, body = templatePost(req)
	}
	p.Title = title
	p.Body = body
}

func (f *Filler) fillComment(ctx context.Context, c *types.Comment, post *types.Post, parent string) {
	req := CommentRequest{
		Persona:    f.personas[c.AuthorID],
		Role:       c.Role,
		ParentText: parent,
	}
	if post != nil {
		req.PostTitle = post.Title
		req.PostBody = post.Body
	}
	text, err := f.synth.CommentText(ctx, req)
	if err != nil {
		f.log.WithError(err).WithField("comment", c.ID).Warn("comment synthesis failed, using template")
		text = templateComment(req)
	}
	c.Text = text
}
