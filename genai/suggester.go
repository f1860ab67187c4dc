// Package genai drafts review comment text with Google's generative AI
// models.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	diffmark "github.com/diffmark/diffmark"
)

// Compile-time interface verification.
var _ diffmark.Suggester = (*Suggester)(nil)

// Suggester drafts review comments by prompting a Gemini model with the
// selected diff excerpt.
type Suggester struct {
	client *genai.Client
	model  string
}

// NewSuggester creates a suggester using apiKey and the named model.
func NewSuggester(ctx context.Context, apiKey, model string) (*Suggester, error) {
	if apiKey == "" {
		return nil, errors.New("genai: API key is required")
	}
	if model == "" {
		return nil, errors.New("genai: model name is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Suggester{client: client, model: model}, nil
}

// Suggest returns a drafted review comment for the selected range. The
// result is a starting point for the reviewer, never posted on its own.
func (s *Suggester) Suggest(ctx context.Context, req diffmark.SuggestRequest) (string, error) {
	prompt := buildPrompt(req)

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate suggestion: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("genai: model returned no text")
	}
	return text, nil
}

func buildPrompt(req diffmark.SuggestRequest) string {
	var sb strings.Builder
	sb.WriteString("You are reviewing a code change. Draft a short, specific review comment ")
	sb.WriteString("for the selected lines below. Point out a concrete issue or ask a concrete ")
	sb.WriteString("question; do not summarize the change. Reply with the comment text only.\n\n")
	fmt.Fprintf(&sb, "File: %s\n", req.Path)
	if req.BeginLine == req.EndLine {
		fmt.Fprintf(&sb, "Selected line %d:\n", req.BeginLine)
	} else {
		fmt.Fprintf(&sb, "Selected lines %d-%d:\n", req.BeginLine, req.EndLine)
	}
	sb.WriteString("```\n")
	sb.WriteString(req.Excerpt)
	if !strings.HasSuffix(req.Excerpt, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")
	return sb.String()
}
