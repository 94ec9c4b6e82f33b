package quality

import (
	"strings"

	"github.com/kynrd/threadloom/pkg/types"
)

// scoreConsistency checks that each persona's text stays inside a plausible
// voice: sane sentence lengths, no register mixing.
func (s *Scorer) scoreConsistency(batch *types.Batch) float64 {
	texts := make(map[string]*strings.Builder)
	textFor := func(id string) *strings.Builder {
		b, ok := texts[id]
		if !ok {
			b = &strings.Builder{}
			texts[id] = b
		}
		return b
	}

	for _, p := range batch.Posts {
		b := textFor(p.AuthorID)
		b.WriteString(p.Title)
		b.WriteString(" ")
		b.WriteString(p.Body)
		b.WriteString("\n")
	}
	for _, c := range batch.Comments {
		b := textFor(c.AuthorID)
		b.WriteString(c.Text)
		b.WriteString("\n")
	}

	penalty := 0.0
	for _, b := range texts {
		text := b.String()
		if strings.TrimSpace(text) == "" {
			continue
		}

		mean := meanSentenceLength(text)
		if mean < 5 || mean > 30 {
			penalty += 0.3
		}

		if containsAny(text, professionalMarkers) && containsAny(text, studentMarkers) {
			penalty += 0.5
		}
	}

	return 10.0 - penalty
}
