// Package generator drives batch generation: selection, threading, text
// fill and scoring under a retry-until-acceptable loop.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kynrd/threadloom/pkg/quality"
	"github.com/kynrd/threadloom/pkg/selection"
	"github.com/kynrd/threadloom/pkg/state"
	"github.com/kynrd/threadloom/pkg/store"
	"github.com/kynrd/threadloom/pkg/synth"
	"github.com/kynrd/threadloom/pkg/thread"
	"github.com/kynrd/threadloom/pkg/types"
)

// Options configures one generation run.
type Options struct {
	BatchSize   int       // posts per batch
	MinScore    float64   // acceptance threshold for the aggregate
	MaxAttempts int       // retry budget; defaults to 5
	WeekStart   time.Time // start of the week being generated
}

func (o *Options) applyDefaults(now time.Time) {
	if o.BatchSize <= 0 {
		o.BatchSize = 3
	}
	if o.MinScore <= 0 {
		o.MinScore = 7.0
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 5
	}
	if o.WeekStart.IsZero() {
		// Next Monday at midnight.
		d := now
		for d.Weekday() != time.Monday {
			d = d.AddDate(0, 0, 1)
		}
		o.WeekStart = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
}

// Engine runs the generation loop against a store and a synthesizer.
type Engine struct {
	store  store.Store
	synth  synth.Synthesizer
	rng    *rand.Rand
	log    *logrus.Logger
	events EventLogger

	// Clock is overridable for tests; defaults to time.Now.
	Clock func() time.Time

	// build constructs one attempt; replaced in tests to exercise the
	// retry loop with fixed outcomes.
	build buildFunc
}

type buildFunc func(ctx context.Context, inputs selection.Inputs, genState *types.StateStore, opts Options, now time.Time, attempt int) (*attemptResult, error)

// New creates an engine. events may be nil.
func New(st store.Store, sy synth.Synthesizer, rng *rand.Rand, log *logrus.Logger, events EventLogger) *Engine {
	e := &Engine{
		store:  st,
		synth:  sy,
		rng:    rng,
		log:    log,
		events: events,
		Clock:  time.Now,
	}
	e.build = e.buildAttempt
	return e
}

// attemptResult is the outcome of one constructed attempt. Falling short of
// the threshold is data here, not an error.
type attemptResult struct {
	batch *types.Batch
	score *types.QualityScore
}

// Generate runs up to MaxAttempts generation attempts and returns either an
// accepted batch, the best-scoring batch as a fallback, or
// ErrGenerationExhausted when nothing constructed at all. On acceptance or
// fallback the batch is committed to state and persisted; persistence
// errors propagate to the caller.
func (e *Engine) Generate(ctx context.Context, opts Options) (*types.Batch, error) {
	now := e.Clock()
	opts.applyDefaults(now)

	inputs, err := e.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	genState, err := e.store.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	var best *attemptResult
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		result, err := e.build(ctx, inputs, genState, opts, now, attempt)
		if err != nil {
			attemptErr := &AttemptError{Attempt: attempt, Err: err}
			e.log.WithError(attemptErr).Warn("attempt construction failed")
			e.logEvent(AttemptEvent{Timestamp: now, Attempt: attempt, Error: attemptErr.Error()})
			continue
		}

		e.logEvent(AttemptEvent{
			Timestamp: now,
			BatchID:   result.batch.ID,
			Attempt:   attempt,
			Accepted:  result.score.MeetsThreshold(opts.MinScore),
			Score:     result.score,
		})

		if best == nil || result.score.Aggregate > best.score.Aggregate {
			best = result
		}

		if result.score.MeetsThreshold(opts.MinScore) {
			e.log.WithFields(logrus.Fields{
				"attempt":   attempt,
				"aggregate": result.score.Aggregate,
			}).Info("batch accepted")
			return e.commit(ctx, genState, result, now)
		}

		e.log.WithFields(logrus.Fields{
			"attempt":   attempt,
			"aggregate": result.score.Aggregate,
			"critical":  result.score.HasCritical(),
		}).Info("batch below threshold, retrying")
	}

	if best == nil {
		return nil, ErrGenerationExhausted
	}

	e.log.WithField("aggregate", best.score.Aggregate).
		Warn("no attempt met threshold, committing best candidate")
	best.batch.Meta.BestOfN = true
	return e.commit(ctx, genState, best, now)
}

func (e *Engine) loadInputs(ctx context.Context) (selection.Inputs, error) {
	personas, err := e.store.LoadPersonas(ctx)
	if err != nil {
		return selection.Inputs{}, fmt.Errorf("load personas: %w", err)
	}
	venues, err := e.store.LoadVenues(ctx)
	if err != nil {
		return selection.Inputs{}, fmt.Errorf("load venues: %w", err)
	}
	tags, err := e.store.LoadTags(ctx)
	if err != nil {
		return selection.Inputs{}, fmt.Errorf("load tags: %w", err)
	}

	inputs := selection.Inputs{Personas: personas, Venues: venues, Tags: tags}
	if err := inputs.Validate(); err != nil {
		return selection.Inputs{}, &ValidationError{Err: err}
	}
	return inputs, nil
}

// buildAttempt constructs, fills and scores one candidate batch.
func (e *Engine) buildAttempt(ctx context.Context, inputs selection.Inputs, genState *types.StateStore, opts Options, now time.Time, attempt int) (*attemptResult, error) {
	sel := selection.New(inputs, genState, e.rng, now, e.log)
	posts, err := sel.BuildDraft(opts.BatchSize, opts.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("build draft: %w", err)
	}

	orch := thread.New(inputs.Personas, inputs.Venues, genState, e.rng, now, e.log)
	comments := orch.BuildThreads(posts)

	batch := &types.Batch{
		ID:        uuid.NewString(),
		StartDate: opts.WeekStart,
		Posts:     posts,
		Comments:  comments,
		Status:    types.StatusDraft,
		Meta: types.GenerationMeta{
			Attempt:     attempt,
			Threshold:   opts.MinScore,
			GeneratedAt: now,
		},
	}

	filler := synth.NewFiller(e.synth, inputs.Personas, inputs.Venues, e.rng, e.log)
	filler.Fill(ctx, batch)

	scorer := quality.New(inputs.Personas, genState, now, e.log)
	batch.Score = scorer.Score(batch)

	return &attemptResult{batch: batch, score: batch.Score}, nil
}

// commit marks the batch approved, folds it into state and persists both.
func (e *Engine) commit(ctx context.Context, genState *types.StateStore, result *attemptResult, now time.Time) (*types.Batch, error) {
	result.batch.Status = types.StatusApproved

	tracker := state.NewTracker(now, e.log)
	tracker.Commit(genState, result.batch)

	if err := e.store.SaveState(ctx, genState); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	if err := e.store.SaveBatch(ctx, result.batch); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}
	return result.batch, nil
}

func (e *Engine) logEvent(ev AttemptEvent) {
	if e.events == nil {
		return
	}
	if err := e.events.LogAttempt(ev); err != nil {
		e.log.WithError(err).Warn("event log write failed")
	}
}
