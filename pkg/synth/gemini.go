package synth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/kynrd/threadloom/pkg/types"
)

// Gemini synthesizes text with the Google GenAI API.
type Gemini struct {
	client *genai.Client
	model  string
}

// GeminiConfig holds provider configuration.
type GeminiConfig struct {
	APIKey string // falls back to GOOGLE_API_KEY
	Model  string // falls back to GOOGLE_MODEL, then a default
}

// NewGemini creates a Gemini-backed synthesizer.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = os.Getenv("GOOGLE_MODEL")
	}
	if model == "" {
		model = "gemini-3-pro"
	}

	return &Gemini{client: client, model: model}, nil
}

// PostText generates a post title and body in the persona's voice.
func (g *Gemini) PostText(ctx context.Context, req PostRequest) (string, string, error) {
	prompt := postPrompt(req)
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return "", "", err
	}

	title, body, found := strings.Cut(out, "\n")
	if !found || strings.TrimSpace(body) == "" {
		return "", "", fmt.Errorf("malformed post response: missing body")
	}
	return strings.TrimSpace(title), strings.TrimSpace(body), nil
}

// CommentText generates one comment in the persona's voice.
func (g *Gemini) CommentText(ctx context.Context, req CommentRequest) (string, error) {
	out, err := g.generate(ctx, commentPrompt(req))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from gemini")
	}

	var result string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			result += part.Text
		}
	}
	if result == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return result, nil
}

func postPrompt(req PostRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s. Backstory: %s\n\n",
		req.Persona.Username, req.Persona.Role, req.Persona.Backstory)
	fmt.Fprintf(&b, "Write a forum post for %s (%s audience, %s tone).\n",
		req.Venue.Name, strings.Join(req.Venue.Audience, ", "), req.Venue.Tone)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Shape it as a %s.\n", formatDescription(req.Format))
	b.WriteString("First line is the title, the rest is the body. Plain text, no markdown, no hashtags.")
	return b.String()
}

func commentPrompt(req CommentRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s. Backstory: %s\n\n",
		req.Persona.Username, req.Persona.Role, req.Persona.Backstory)
	fmt.Fprintf(&b, "Post: %s\n%s\n\n", req.PostTitle, req.PostBody)
	if req.ParentText != "" {
		fmt.Fprintf(&b, "You are replying to this comment: %s\n\n", req.ParentText)
	}
	switch req.Role {
	case types.RoleInitialResponse:
		b.WriteString("Write the first reply: share a related experience or a direct answer.")
	case types.RoleAgreement:
		b.WriteString("Write a short reply agreeing and adding one small detail.")
	case types.RoleOPEngagement:
		b.WriteString("You wrote the original post. Thank the commenter and respond to their point.")
	case types.RoleAddition:
		b.WriteString("Write a standalone comment adding a different angle to the discussion.")
	}
	b.WriteString(" One to three sentences, plain text.")
	return b.String()
}

func formatDescription(f types.PostFormat) string {
	switch f {
	case types.FormatDirectQuestion:
		return "direct question asking for suggestions"
	case types.FormatComparison:
		return "comparison between options you are weighing"
	case types.FormatRecommendation:
		return "request for recommendations with your constraints"
	default:
		return "short personal experience ending in an open question"
	}
}
