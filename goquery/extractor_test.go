package goquery_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/linktag/linktag"
	linkgoquery "github.com/linktag/linktag/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time verification that Extractor implements linktag.Extractor.
var _ linktag.Extractor = (*linkgoquery.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	extractor := linkgoquery.NewExtractor()

	t.Run("title and paragraphs", func(t *testing.T) {
		t.Parallel()

		result, err := extractor.Extract("<html><title>Hi</title><body><p>Hello</p><p>World</p></body></html>")
		require.NoError(t, err)
		assert.Equal(t, "Hi", result.Title)
		assert.Equal(t, "Hello World", result.Body)
	})

	t.Run("missing title yields empty title", func(t *testing.T) {
		t.Parallel()

		result, err := extractor.Extract("<html><body><p>text</p></body></html>")
		require.NoError(t, err)
		assert.Empty(t, result.Title)
		assert.Equal(t, "text", result.Body)
	})

	t.Run("prefers main over surrounding paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>nav junk</p>
			<main><p>real</p><p>content</p></main>
			<footer><p>footer junk</p></footer>
		</body></html>`
		result, err := extractor.Extract(html)
		require.NoError(t, err)
		assert.Equal(t, "real content", result.Body)
	})

	t.Run("prefers article when no main", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>junk</p>
			<article><p>article text</p></article>
		</body></html>`
		result, err := extractor.Extract(html)
		require.NoError(t, err)
		assert.Equal(t, "article text", result.Body)
	})

	t.Run("prefers content container when no landmarks", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>junk</p>
			<div class="content extra"><p>div text</p></div>
		</body></html>`
		result, err := extractor.Extract(html)
		require.NoError(t, err)
		assert.Equal(t, "div text", result.Body)
	})

	t.Run("main wins over article and content div", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article><p>from article</p></article>
			<main><p>from main</p></main>
			<div class="content"><p>from div</p></div>
		</body></html>`
		result, err := extractor.Extract(html)
		require.NoError(t, err)
		assert.Equal(t, "from main", result.Body)
	})

	t.Run("falls back to all paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div><p>one</p></div><p>two</p></body></html>`
		result, err := extractor.Extract(html)
		require.NoError(t, err)
		assert.Equal(t, "one two", result.Body)
	})

	t.Run("no paragraphs yields empty body", func(t *testing.T) {
		t.Parallel()

		result, err := extractor.Extract("<html><title>Only Title</title><body><div>no paras</div></body></html>")
		require.NoError(t, err)
		assert.Equal(t, "Only Title", result.Title)
		assert.Empty(t, result.Body)
	})

	t.Run("empty input is EINVALID", func(t *testing.T) {
		t.Parallel()

		_, err := extractor.Extract("")
		require.Error(t, err)
		assert.Equal(t, linktag.EINVALID, linktag.ErrorCode(err))
	})
}

func TestExtractor_BodyTruncation(t *testing.T) {
	t.Parallel()

	extractor := linkgoquery.NewExtractor()

	long := strings.Repeat("a", linkgoquery.MaxBodyLen+500)
	result, err := extractor.Extract("<html><body><p>" + long + "</p></body></html>")
	require.NoError(t, err)

	assert.Len(t, result.Body, linkgoquery.MaxBodyLen+len(linkgoquery.TruncationMarker))
	assert.True(t, strings.HasSuffix(result.Body, linkgoquery.TruncationMarker))
}

func TestExtractor_BodyTruncationCountsRunes(t *testing.T) {
	t.Parallel()

	extractor := linkgoquery.NewExtractor()

	long := strings.Repeat("é", linkgoquery.MaxBodyLen+1)
	result, err := extractor.Extract("<html><body><p>" + long + "</p></body></html>")
	require.NoError(t, err)

	assert.Equal(t, linkgoquery.MaxBodyLen+len(linkgoquery.TruncationMarker), utf8.RuneCountInString(result.Body))
}

func TestExtractor_BodyAtLimitNotTruncated(t *testing.T) {
	t.Parallel()

	extractor := linkgoquery.NewExtractor()

	exact := strings.Repeat("b", linkgoquery.MaxBodyLen)
	result, err := extractor.Extract("<html><body><p>" + exact + "</p></body></html>")
	require.NoError(t, err)

	assert.Equal(t, exact, result.Body)
}
