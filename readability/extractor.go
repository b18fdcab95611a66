// Package readability provides an alternative linktag.Extractor built
// on go-readability's boilerplate removal. It can fare better than the
// selector heuristic on pages without semantic markup.
package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/linktag/linktag"
)

const (
	maxBodyLen       = 10000
	truncationMarker = "..."
)

// Ensure Extractor implements linktag.Extractor at compile time.
var _ linktag.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract a title/body from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the normalized content.
// The article text is collapsed to single-space-separated words and
// capped at the same length as the default extractor.
func (e *Extractor) Extract(rawHTML string) (*linktag.ExtractResult, error) {
	if rawHTML == "" {
		return nil, linktag.Errorf(linktag.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	body := strings.Join(strings.Fields(article.TextContent), " ")
	if runes := []rune(body); len(runes) > maxBodyLen {
		body = string(runes[:maxBodyLen]) + truncationMarker
	}

	return &linktag.ExtractResult{
		Title: article.Title,
		Body:  body,
	}, nil
}
