// Command generate runs one weekly batch generation against the configured
// store and prints the quality report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/kynrd/threadloom/pkg/config"
	"github.com/kynrd/threadloom/pkg/generator"
	"github.com/kynrd/threadloom/pkg/logging"
	"github.com/kynrd/threadloom/pkg/store"
	"github.com/kynrd/threadloom/pkg/synth"
)

func main() {
	config.LoadEnv()
	cfg := config.FromEnv()

	backend := flag.String("store", cfg.StoreBackend, "store backend: memory, file or sqlite")
	dataPath := flag.String("data", cfg.DataPath, "data directory (file) or database path (sqlite)")
	batchSize := flag.Int("posts", cfg.BatchSize, "posts per batch")
	minScore := flag.Float64("min-score", cfg.MinScore, "acceptance threshold")
	dryRun := flag.Bool("dry-run", false, "use template synthesis instead of the LLM")
	flag.Parse()

	log := logging.NewLogger()
	ctx := context.Background()

	st, err := store.Open(*backend, *dataPath)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}

	var sy synth.Synthesizer
	if *dryRun {
		sy = synth.Templates{}
	} else {
		gemini, err := synth.NewGemini(ctx, synth.GeminiConfig{})
		if err != nil {
			log.WithError(err).Fatal("init synthesizer")
		}
		sy = gemini
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var events generator.EventLogger
	if cfg.EventLogPath != "" {
		jsonl, err := generator.NewJSONLLogger(cfg.EventLogPath)
		if err != nil {
			log.WithError(err).Fatal("open event log")
		}
		defer jsonl.Close()
		events = jsonl
	}

	engine := generator.New(st, sy, rng, log, events)
	batch, err := engine.Generate(ctx, generator.Options{
		BatchSize:   *batchSize,
		MinScore:    *minScore,
		MaxAttempts: cfg.MaxAttempts,
	})
	if err != nil {
		log.WithError(err).Error("generation failed")
		os.Exit(1)
	}

	score := batch.Score
	fmt.Printf("batch %s (%s)\n", batch.ID, batch.Status)
	fmt.Printf("  week of %s, %d posts, %d comments\n",
		batch.StartDate.Format("2006-01-02"), len(batch.Posts), len(batch.Comments))
	fmt.Printf("  naturalness  %.1f\n", score.Naturalness)
	fmt.Printf("  distribution %.1f\n", score.Distribution)
	fmt.Printf("  consistency  %.1f\n", score.Consistency)
	fmt.Printf("  diversity    %.1f\n", score.Diversity)
	fmt.Printf("  timing       %.1f\n", score.Timing)
	fmt.Printf("  aggregate    %.1f (threshold %.1f, attempt %d)\n",
		score.Aggregate, batch.Meta.Threshold, batch.Meta.Attempt)
	for _, f := range score.Flags {
		fmt.Printf("  [%s] %s: %s\n", f.Severity, f.Category, f.Message)
	}
}
