package types

import (
	"sort"
	"time"
)

// PersonaQuota tracks one persona's rolling usage.
type PersonaQuota struct {
	PostTimes        []time.Time `json:"post_times"`
	CommentTimes     []time.Time `json:"comment_times"`
	LastUsed         time.Time   `json:"last_used"`
	ConsecutiveWeeks int         `json:"consecutive_weeks"`
}

// VenueQuota tracks one venue's rolling usage.
type VenueQuota struct {
	PostTimes  []time.Time `json:"post_times"`
	LastPosted time.Time   `json:"last_posted"`
	TopicsUsed []string    `json:"topics_used"`
}

// TagQuota tracks one tag's rolling usage.
type TagQuota struct {
	UsageCount int       `json:"usage_count"`
	LastUsed   time.Time `json:"last_used"`
	Contexts   []string  `json:"contexts"`
}

// Quotas holds per-entity usage counters and timestamp logs.
type Quotas struct {
	Personas map[string]*PersonaQuota `json:"personas"`
	Venues   map[string]*VenueQuota   `json:"venues"`
	Tags     map[string]*TagQuota     `json:"tags"`
}

// Persona returns the quota entry for a persona, creating it if absent.
func (q *Quotas) Persona(id string) *PersonaQuota {
	if q.Personas == nil {
		q.Personas = make(map[string]*PersonaQuota)
	}
	p, ok := q.Personas[id]
	if !ok {
		p = &PersonaQuota{}
		q.Personas[id] = p
	}
	return p
}

// Venue returns the quota entry for a venue, creating it if absent.
func (q *Quotas) Venue(id string) *VenueQuota {
	if q.Venues == nil {
		q.Venues = make(map[string]*VenueQuota)
	}
	v, ok := q.Venues[id]
	if !ok {
		v = &VenueQuota{}
		q.Venues[id] = v
	}
	return v
}

// Tag returns the quota entry for a tag, creating it if absent.
func (q *Quotas) Tag(id string) *TagQuota {
	if q.Tags == nil {
		q.Tags = make(map[string]*TagQuota)
	}
	t, ok := q.Tags[id]
	if !ok {
		t = &TagQuota{}
		q.Tags[id] = t
	}
	return t
}

// Patterns holds cross-entity usage structure: which personas appear
// together, which venues rotate, how comment timing has looked.
type Patterns struct {
	// PersonaPairs counts author/commenter co-occurrences, keyed by the
	// sorted "a|b" pair key.
	PersonaPairs map[string]int `json:"persona_pairs"`

	// VenueRotation is the ordered log of venue ids used, oldest first.
	VenueRotation []string `json:"venue_rotation"`

	// CommentGaps records recent comment gap samples in minutes.
	CommentGaps []float64 `json:"comment_gaps"`
}

// PairKey builds the canonical key for a persona pair.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// PairCount returns how many times two personas have co-occurred.
func (p *Patterns) PairCount(a, b string) int {
	if p.PersonaPairs == nil {
		return 0
	}
	return p.PersonaPairs[PairKey(a, b)]
}

// RecentRotation returns the last n venue rotation entries, oldest first.
func (p *Patterns) RecentRotation(n int) []string {
	if n >= len(p.VenueRotation) {
		return p.VenueRotation
	}
	return p.VenueRotation[len(p.VenueRotation)-n:]
}

// WeekScore records one committed week's aggregate score.
type WeekScore struct {
	BatchID    string    `json:"batch_id"`
	Aggregate  float64   `json:"aggregate"`
	RecordedAt time.Time `json:"recorded_at"`
}

// QualityMetrics holds running averages over committed weeks.
type QualityMetrics struct {
	AvgNaturalness  float64     `json:"avg_naturalness"`
	AvgConsistency  float64     `json:"avg_consistency"`
	AvgDistribution float64     `json:"avg_distribution"`
	WeekScores      []WeekScore `json:"week_scores"`
}

// History holds retained batches and running totals.
type History struct {
	Batches       []Batch `json:"batches"`
	TotalPosts    int     `json:"total_posts"`
	TotalComments int     `json:"total_comments"`
	TotalWeeks    int     `json:"total_weeks"`
}

// RecentBatches returns up to n most recent batches, newest first.
func (h *History) RecentBatches(n int) []Batch {
	out := make([]Batch, len(h.Batches))
	copy(out, h.Batches)
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// StateStore is the long-lived generation state. It is owned by the quota
// tracker: loaded once at run start, committed back once on acceptance.
// Concurrent runs against the same store are not coordinated.
type StateStore struct {
	History        History        `json:"history"`
	Quotas         Quotas         `json:"quotas"`
	Patterns       Patterns       `json:"patterns"`
	QualityMetrics QualityMetrics `json:"quality_metrics"`
}

// NewStateStore returns an empty state store with initialized maps.
func NewStateStore() *StateStore {
	return &StateStore{
		Quotas: Quotas{
			Personas: make(map[string]*PersonaQuota),
			Venues:   make(map[string]*VenueQuota),
			Tags:     make(map[string]*TagQuota),
		},
		Patterns: Patterns{
			PersonaPairs: make(map[string]int),
		},
	}
}
