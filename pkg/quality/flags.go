package quality

import (
	"fmt"

	"github.com/kynrd/threadloom/pkg/types"
)

// Flag thresholds. Naturalness and distribution can go critical; the other
// dimensions only warn.
const (
	criticalBelow = 5.0
	warningBelow  = 7.0
)

// detectFlags derives flags from dimension thresholds plus structural
// checks on the batch itself.
func (s *Scorer) detectFlags(batch *types.Batch, score *types.QualityScore) []types.Flag {
	flags := make([]types.Flag, 0)

	flags = appendDimensionFlags(flags, "naturalness", score.Naturalness, true,
		"vary sentence shapes and loosen the register")
	flags = appendDimensionFlags(flags, "distribution", score.Distribution, true,
		"spread posts across more personas and venues")
	flags = appendDimensionFlags(flags, "consistency", score.Consistency, false,
		"keep each persona inside one register")
	flags = appendDimensionFlags(flags, "diversity", score.Diversity, false,
		"rotate venues and retire recently used topics")
	flags = appendDimensionFlags(flags, "timing", score.Timing, false,
		"add jitter to comment gaps and avoid night hours")

	if hasVenueRepeat(batch) {
		flags = append(flags, types.Flag{
			Severity:       types.SeverityCritical,
			Category:       "distribution",
			Message:        "a venue appears more than once in the batch",
			Recommendation: "one post per venue per week",
		})
	}

	if gaps := commentGaps(batch); len(gaps) >= 2 && variance(gaps) < 4 {
		flags = append(flags, types.Flag{
			Severity:       types.SeverityWarning,
			Category:       "timing",
			Message:        "comment gaps are nearly uniform",
			Recommendation: "widen the jitter range on reply timing",
		})
	}

	return flags
}

func appendDimensionFlags(flags []types.Flag, name string, value float64, canBeCritical bool, recommendation string) []types.Flag {
	if canBeCritical && value < criticalBelow {
		return append(flags, types.Flag{
			Severity:       types.SeverityCritical,
			Category:       name,
			Message:        fmt.Sprintf("%s score %.1f below critical threshold %.1f", name, value, criticalBelow),
			Recommendation: recommendation,
		})
	}
	if value < warningBelow {
		return append(flags, types.Flag{
			Severity:       types.SeverityWarning,
			Category:       name,
			Message:        fmt.Sprintf("%s score %.1f below warning threshold %.1f", name, value, warningBelow),
			Recommendation: recommendation,
		})
	}
	return flags
}
