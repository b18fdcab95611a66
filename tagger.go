package linktag

import "context"

// Tagger derives short hashtag-style annotations from page content
// using an external text-generation capability.
type Tagger interface {
	// GenerateTags returns a space-separated list of suggested hashtags
	// for the given title and body. The returned text is the model's raw
	// output, trimmed of surrounding whitespace; no format validation is
	// performed at this layer.
	//
	// Returns EINVALID when both title and body are empty.
	GenerateTags(ctx context.Context, title, body string) (string, error)
}
