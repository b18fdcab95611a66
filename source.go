package linktag

import "context"

// URLSource yields the ordered, deduplicated list of URLs to process.
// Implementations hide where the list comes from (a text file, a
// sitemap, ...).
type URLSource interface {
	URLs(ctx context.Context) ([]string, error)
}

// Mode selects what a pipeline run does. The interactive choice the
// operator makes at startup is resolved to a Mode by the caller; the
// pipeline itself never prompts.
type Mode int

const (
	// ModeFullProcess fetches, extracts and tags every input URL,
	// overwriting any prior result collection.
	ModeFullProcess Mode = iota

	// ModeTopUp only generates hashtags for already-saved records that
	// are missing them; titles and bodies are reused, nothing is
	// re-fetched.
	ModeTopUp

	// ModeAbort performs no work.
	ModeAbort
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeFullProcess:
		return "full"
	case ModeTopUp:
		return "topup"
	case ModeAbort:
		return "abort"
	default:
		return "unknown"
	}
}
