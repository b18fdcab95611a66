package linktag

import "context"

// RecordStore persists the full, ordered result collection.
// Save replaces any prior content; Load returns records in the order
// they were saved.
type RecordStore interface {
	// Exists reports whether a previously saved collection is present.
	Exists() bool

	// Load returns the saved records in their original order.
	// Returns ENOTFOUND if nothing has been saved.
	Load(ctx context.Context) ([]*Record, error)

	// Save replaces the stored collection with the given records.
	Save(ctx context.Context, records []*Record) error
}
