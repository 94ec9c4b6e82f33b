package synth

import (
	"context"
	"fmt"

	"github.com/kynrd/threadloom/pkg/types"
)

// Fixed fallback templates used when the provider errors. Deliberately
// plain; post-processing roughs them up afterwards.

func templatePost(req PostRequest) (string, string) {
	topic := req.Topic
	if topic == "" {
		topic = "this"
	}
	switch req.Format {
	case types.FormatComparison:
		return fmt.Sprintf("Torn between two approaches to %s", topic),
			fmt.Sprintf("I keep going back and forth on %s. Has anyone tried both ways and can say what actually stuck?", topic)
	case types.FormatRecommendation:
		return fmt.Sprintf("Looking for recommendations: %s", topic),
			fmt.Sprintf("Dealing with %s and my current setup is not cutting it. What is working for you?", topic)
	case types.FormatExperience:
		return fmt.Sprintf("Finally made progress on %s", topic),
			fmt.Sprintf("Spent the last few weeks fighting %s and wanted to share what helped. Curious if others hit the same wall.", topic)
	default:
		return fmt.Sprintf("How do you handle %s?", topic),
			fmt.Sprintf("Genuine question, %s has been eating my week. What do you all do?", topic)
	}
}

func templateComment(req CommentRequest) string {
	switch req.Role {
	case types.RoleAgreement:
		return "Same here, took me a while to figure that out too."
	case types.RoleOPEngagement:
		return "Thanks, that is really helpful. Going to try that this week."
	case types.RoleAddition:
		return "Slightly different take: the thing that fixed this for me was changing how I scheduled it, not the tool."
	default:
		return "I ran into this last month. What helped was breaking it into smaller pieces and just starting with the worst one."
	}
}

// Templates is a Synthesizer that always answers from the fixed template
// set. Useful for dry runs and tests; no API key required.
type Templates struct{}

// PostText returns a template post.
func (Templates) PostText(_ context.Context, req PostRequest) (string, string, error) {
	title, body := templatePost(req)
	return title, body, nil
}

// CommentText returns a template comment.
func (Templates) CommentText(_ context.Context, req CommentRequest) (string, error) {
	return templateComment(req), nil
}
