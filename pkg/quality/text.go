package quality

import (
	"strings"
	"unicode"
)

// Marker lists used by the naturalness and consistency checks.
var (
	casualMarkers = []string{
		"tbh", "imo", "lol", "honestly", "kinda", "sorta", "ngl",
		"btw", "idk", "yeah", "gonna", "wanna", "pretty much", "haha",
	}

	formalConnectives = []string{
		"furthermore", "moreover", "in addition", "in conclusion",
		"additionally", "consequently", "thus,",
	}

	seoTemplates = []string{
		"best solution for", "top choice for", "ultimate guide",
		"in today's fast-paced", "look no further", "game changer for",
		"must-have tool", "revolutionize your",
	}

	professionalMarkers = []string{
		"stakeholder", "deliverable", "leverage", "roi", "sprint",
		"standup", "quarterly", "workflow", "client",
	}

	studentMarkers = []string{
		"semester", "homework", "my prof", "professor", "exam",
		"lecture", "dorm", "assignment due", "student",
	}
)

func containsAny(text string, markers []string) bool {
	lower := strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func countAny(text string, markers []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, m := range markers {
		n += strings.Count(lower, m)
	}
	return n
}

// splitSentences splits text on terminal punctuation. Fragments without
// terminal punctuation still count as a sentence.
func splitSentences(text string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range text {
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(cur.String()); s != "" {
				out = append(out, s)
			}
			cur.Reset()
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// hasLowercaseStart reports whether any sentence starts with a lowercase
// letter.
func hasLowercaseStart(text string) bool {
	for _, s := range splitSentences(text) {
		for _, r := range s {
			if unicode.IsLetter(r) {
				if unicode.IsLower(r) {
					return true
				}
				break
			}
			break
		}
	}
	return false
}

// missingTerminalPunctuation reports whether the text trails off without
// ., ! or ?.
func missingTerminalPunctuation(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	last := trimmed[len(trimmed)-1]
	return last != '.' && last != '!' && last != '?'
}

// hasInformalCaps reports whether the text contains an all-caps word of two
// or more letters away from a sentence start (SO, NEVER, WHY...).
func hasInformalCaps(text string) bool {
	for _, sentence := range splitSentences(text) {
		words := strings.Fields(sentence)
		for i, w := range words {
			if i == 0 {
				continue
			}
			w = strings.Trim(w, ".,!?;:'\"")
			if len(w) < 2 {
				continue
			}
			allUpper := true
			for _, r := range w {
				if !unicode.IsUpper(r) {
					allUpper = false
					break
				}
			}
			if allUpper {
				return true
			}
		}
	}
	return false
}

// meanSentenceLength returns the average word count per sentence.
func meanSentenceLength(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return 0
	}
	words := 0
	for _, s := range sentences {
		words += len(strings.Fields(s))
	}
	return float64(words) / float64(len(sentences))
}
