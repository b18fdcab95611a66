// Package gemini implements linktag.Tagger using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/linktag/linktag"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is specified.
const DefaultModel = "gemini-2.5-flash"

// maxOutputTokens bounds the model response; a handful of hashtags
// never needs more.
const maxOutputTokens = 100

// bodyPromptLimit caps how much body text goes into the prompt to stay
// within model token limits.
const bodyPromptLimit = 1000

// Ensure Tagger implements linktag.Tagger at compile time.
var _ linktag.Tagger = (*Tagger)(nil)

// Tagger generates hashtag annotations for page content.
type Tagger struct {
	client *genai.Client
	model  string
}

// NewTagger creates a new Tagger. If model is empty, DefaultModel is
// used.
func NewTagger(client *genai.Client, model string) *Tagger {
	if model == "" {
		model = DefaultModel
	}
	return &Tagger{client: client, model: model}
}

// GenerateTags returns the model's suggested hashtags for the given
// title and body, trimmed of surrounding whitespace. No validation of
// the tag format is performed.
func (t *Tagger) GenerateTags(ctx context.Context, title, body string) (string, error) {
	if title == "" && body == "" {
		return "", linktag.Errorf(linktag.EINVALID, "title or body required")
	}

	prompt := BuildPrompt(title, body)
	config := BuildConfig()

	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", linktag.Errorf(linktag.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for tagging calls.
func BuildConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You suggest concise social-media hashtags for web content. Return only the hashtags separated by spaces, without any explanation.",
			}},
		},
		MaxOutputTokens: maxOutputTokens,
	}
}

// BuildPrompt builds the tagging prompt from a title and at most the
// first 1,000 characters of body text.
func BuildPrompt(title, body string) string {
	if runes := []rune(body); len(runes) > bodyPromptLimit {
		body = string(runes[:bodyPromptLimit])
	}

	var sb strings.Builder
	sb.WriteString("Based on the following title and content, suggest 3-5 relevant hashtags.\n\n")
	fmt.Fprintf(&sb, "Title: %s\n\n", title)
	fmt.Fprintf(&sb, "Content: %s", body)
	return sb.String()
}
