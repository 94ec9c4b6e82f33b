package synth

import (
	"math/rand"
	"strings"
	"unicode"

	"github.com/kynrd/threadloom/pkg/types"
)

var contractions = [][2]string{
	{"do not", "don't"},
	{"does not", "doesn't"},
	{"did not", "didn't"},
	{"cannot", "can't"},
	{"can not", "can't"},
	{"will not", "won't"},
	{"would not", "wouldn't"},
	{"should not", "shouldn't"},
	{"could not", "couldn't"},
	{"is not", "isn't"},
	{"are not", "aren't"},
	{"I am", "I'm"},
	{"it is", "it's"},
	{"that is", "that's"},
	{"I have", "I've"},
	{"I would", "I'd"},
	{"going to", "gonna"},
}

// Process applies the persona's voice to synthesized text: contractions,
// casual casing, dropped terminal punctuation and occasional typos. The
// same text with the same rng state always yields the same output.
func Process(text string, voice types.VoiceProfile, rng *rand.Rand) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	out := applyContractions(text)

	if rng.Float64() < voice.Casualness {
		out = lowercaseSentenceStarts(out, voice.Casualness, rng)
	}
	if rng.Float64() < voice.Casualness*0.5 {
		out = strings.TrimSuffix(strings.TrimSpace(out), ".")
	}
	if voice.TypoRate > 0 {
		out = injectTypos(out, voice.TypoRate, rng)
	}

	return out
}

func applyContractions(text string) string {
	for _, c := range contractions {
		text = strings.ReplaceAll(text, c[0], c[1])
		text = strings.ReplaceAll(text, capitalize(c[0]), capitalize(c[1]))
	}
	return text
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// lowercaseSentenceStarts downs-cases sentence-leading letters with a
// probability driven by casualness. The pronoun I is left alone.
func lowercaseSentenceStarts(text string, casualness float64, rng *rand.Rand) string {
	runes := []rune(text)
	atStart := true
	for i, r := range runes {
		if atStart && unicode.IsLetter(r) {
			isPronounI := r == 'I' && (i+1 >= len(runes) || !unicode.IsLetter(runes[i+1]))
			if !isPronounI && rng.Float64() < casualness {
				runes[i] = unicode.ToLower(r)
			}
			atStart = false
		}
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			atStart = true
		}
	}
	return string(runes)
}

// injectTypos swaps adjacent letters inside occasional words. Rate is the
// per-word probability, scaled down so even typo-prone personas stay
// readable.
func injectTypos(text string, rate float64, rng *rand.Rand) string {
	words := strings.Split(text, " ")
	for i, w := range words {
		if len(w) < 4 {
			continue
		}
		if rng.Float64() >= rate*0.3 {
			continue
		}
		r := []rune(w)
		// Swap two interior letters, leaving the first and last alone.
		j := 1 + rng.Intn(len(r)-3)
		if unicode.IsLetter(r[j]) && unicode.IsLetter(r[j+1]) {
			r[j], r[j+1] = r[j+1], r[j]
			words[i] = string(r)
		}
	}
	return strings.Join(words, " ")
}
