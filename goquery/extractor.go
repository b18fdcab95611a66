// Package goquery provides the default linktag.Extractor built on CSS
// selection.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/linktag/linktag"
)

// MaxBodyLen caps the extracted body so downstream tagging prompts stay
// within model token limits.
const MaxBodyLen = 10000

// TruncationMarker is appended to bodies that were capped at MaxBodyLen.
const TruncationMarker = "..."

// contentSelectors is the primary content region search order. The last
// resort, all paragraphs in the document, is handled separately.
var contentSelectors = []string{"main", "article", "div.content"}

// Ensure Extractor implements linktag.Extractor at compile time.
var _ linktag.Extractor = (*Extractor)(nil)

// Extractor derives a title/body representation from HTML.
// The title is the text of the first title element. The body is the
// space-joined text of the paragraphs inside the first main landmark,
// article landmark, or "content" container found, falling back to every
// paragraph in the document.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses HTML and returns the normalized content.
func (e *Extractor) Extract(html string) (*linktag.ExtractResult, error) {
	if html == "" {
		return nil, linktag.Errorf(linktag.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	paragraphs := doc.Find("p")
	for _, selector := range contentSelectors {
		if region := doc.Find(selector).First(); region.Length() > 0 {
			paragraphs = region.Find("p")
			break
		}
	}

	var parts []string
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return &linktag.ExtractResult{
		Title: title,
		Body:  capBody(strings.Join(parts, " ")),
	}, nil
}

// capBody truncates the body to MaxBodyLen characters, appending the
// truncation marker when content was dropped.
func capBody(body string) string {
	runes := []rune(body)
	if len(runes) <= MaxBodyLen {
		return body
	}
	return string(runes[:MaxBodyLen]) + TruncationMarker
}
