// Package types defines core types for the Threadloom generation engine.
package types

import "time"

// Persona is a recurring synthetic author identity. Reference data, loaded
// once per generation run and never mutated by the engine.
type Persona struct {
	ID        string `json:"id" yaml:"id"`
	Username  string `json:"username" yaml:"username"`
	Role      string `json:"role" yaml:"role"`
	Backstory string `json:"backstory" yaml:"backstory"`

	// PainPoints are candidate post topics phrased in the persona's own terms.
	PainPoints []string `json:"pain_points" yaml:"pain_points"`

	Voice VoiceProfile `json:"voice" yaml:"voice"`
}

// VoiceProfile controls how a persona's text is post-processed and how
// plausibly the persona fits each venue.
type VoiceProfile struct {
	Casualness float64 `json:"casualness" yaml:"casualness"` // 0-1
	TypoRate   float64 `json:"typo_rate" yaml:"typo_rate"`   // 0-1

	// VenueAuthenticity maps venue id -> 0-1 plausibility score.
	// Missing venues default to 0.5.
	VenueAuthenticity map[string]float64 `json:"venue_authenticity" yaml:"venue_authenticity"`
}

// AuthenticityIn returns the persona's authenticity score for a venue.
func (v VoiceProfile) AuthenticityIn(venueID string) float64 {
	if s, ok := v.VenueAuthenticity[venueID]; ok {
		return s
	}
	return 0.5
}

// Venue is a topical posting destination with its own culture. Reference data.
type Venue struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Audience      []string `json:"audience" yaml:"audience"`
	Tone          string   `json:"tone" yaml:"tone"`
	ActivityLevel float64  `json:"activity_level" yaml:"activity_level"` // 0-1

	// RelevanceTerms is the keyword list used to filter pain points for
	// topical fit with this venue.
	RelevanceTerms []string `json:"relevance_terms" yaml:"relevance_terms"`
}

// TagIntent categorizes what a tag is trying to accomplish.
type TagIntent string

const (
	IntentComparison     TagIntent = "comparison"
	IntentRecommendation TagIntent = "recommendation"
	IntentAssistance     TagIntent = "assistance"
	IntentEfficiency     TagIntent = "efficiency"
)

// Tag is a semantic keyword attached to posts. Reference data.
type Tag struct {
	ID            string    `json:"id" yaml:"id"`
	Text          string    `json:"text" yaml:"text"`
	SemanticTerms []string  `json:"semantic_terms" yaml:"semantic_terms"`
	Intent        TagIntent `json:"intent" yaml:"intent"`
}

// PostFormat is the rhetorical shape of a generated post.
type PostFormat string

const (
	FormatDirectQuestion PostFormat = "direct_question"
	FormatComparison     PostFormat = "comparison"
	FormatRecommendation PostFormat = "recommendation"
	FormatExperience     PostFormat = "experience"
)

// Post is one generated forum post. Created by the selectors with empty
// title/body; text is filled later by the synthesis collaborator.
type Post struct {
	ID               string     `json:"id"`
	VenueID          string     `json:"venue_id"`
	Title            string     `json:"title"`
	Body             string     `json:"body"`
	AuthorID         string     `json:"author_id"`
	AuthorUsername   string     `json:"author_username"`
	Timestamp        time.Time  `json:"timestamp"`
	TagIDs           []string   `json:"tag_ids"`
	Topic            string     `json:"topic"`
	Format           PostFormat `json:"format"`
	Intent           TagIntent  `json:"intent"`
	TargetEngagement string     `json:"target_engagement"` // light|medium|high|none
}

// CommentRole identifies a comment's position in the interaction pattern.
type CommentRole string

const (
	RoleInitialResponse CommentRole = "initial_response"
	RoleAgreement       CommentRole = "agreement"
	RoleOPEngagement    CommentRole = "op_engagement"
	RoleAddition        CommentRole = "addition"
)

// Comment is one generated reply in a post's thread.
type Comment struct {
	ID        string      `json:"id"`
	PostID    string      `json:"post_id"`
	ParentID  string      `json:"parent_comment_id,omitempty"`
	AuthorID  string      `json:"author_id"`
	Username  string      `json:"username"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
	Role      CommentRole `json:"role"`
	Depth     int         `json:"depth"`
}

// BatchStatus tracks a batch through its lifecycle.
type BatchStatus string

const (
	StatusDraft    BatchStatus = "draft"
	StatusApproved BatchStatus = "approved"
	StatusPosted   BatchStatus = "posted"
)

// GenerationMeta records how a batch was produced.
type GenerationMeta struct {
	Attempt     int       `json:"attempt"`
	Threshold   float64   `json:"threshold"`
	BestOfN     bool      `json:"best_of_n"` // accepted as fallback, not by threshold
	GeneratedAt time.Time `json:"generated_at"`
}

// Batch is one generated week of posts and comments plus its assessment.
type Batch struct {
	ID        string         `json:"id"`
	StartDate time.Time      `json:"start_date"`
	Posts     []Post         `json:"posts"`
	Comments  []Comment      `json:"comments"`
	Score     *QualityScore  `json:"score,omitempty"`
	Status    BatchStatus    `json:"status"`
	Meta      GenerationMeta `json:"meta"`
}

// FlagSeverity grades quality flags.
type FlagSeverity string

const (
	SeverityCritical FlagSeverity = "critical"
	SeverityWarning  FlagSeverity = "warning"
	SeverityInfo     FlagSeverity = "info"
)

// Flag is one detected quality problem.
type Flag struct {
	Severity       FlagSeverity `json:"severity"`
	Category       string       `json:"category"`
	Message        string       `json:"message"`
	Recommendation string       `json:"recommendation,omitempty"`
}

// QualityScore holds the five dimension scores, their weighted aggregate and
// any flags. All values are clamped to [0,10] and rounded to one decimal.
type QualityScore struct {
	Naturalness  float64 `json:"naturalness"`
	Distribution float64 `json:"distribution"`
	Consistency  float64 `json:"consistency"`
	Diversity    float64 `json:"diversity"`
	Timing       float64 `json:"timing"`
	Aggregate    float64 `json:"aggregate"`
	Flags        []Flag  `json:"flags"`
}

// HasCritical reports whether any flag is critical.
func (q *QualityScore) HasCritical() bool {
	for _, f := range q.Flags {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// MeetsThreshold reports whether the score is acceptable at the given
// minimum aggregate.
func (q *QualityScore) MeetsThreshold(min float64) bool {
	return q.Aggregate >= min && !q.HasCritical()
}
