package linktag

// ExtractResult holds the normalized content of an HTML page.
type ExtractResult struct {
	// Title is the text of the page's first title element.
	Title string

	// Body is the space-joined text of the page's content paragraphs,
	// capped at a fixed length by the implementation.
	Body string
}

// Extractor derives a title/body representation from raw HTML.
type Extractor interface {
	// Extract parses HTML and returns the normalized content.
	// Callers treat any error as "no content" rather than aborting.
	Extract(html string) (*ExtractResult, error)
}
