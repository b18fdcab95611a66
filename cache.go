package linktag

// ContentCache is a content-addressed store mapping a URL to the HTML
// that was fetched for it. Entries are written once and never mutated;
// a present entry is authoritative for its URL for the lifetime of the
// cache (staleness is accepted in exchange for determinism and
// politeness to remote servers).
type ContentCache interface {
	// Exists reports whether a usable cache entry exists for the URL.
	Exists(url string) bool

	// Get returns the cached HTML for the URL.
	// Returns ENOTFOUND if no entry exists.
	Get(url string) (html string, err error)

	// Put stores the HTML for the URL. A failed write must never leave
	// a partial entry observable to subsequent Get calls.
	Put(url string, html string) error
}
