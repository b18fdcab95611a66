package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linktag/linktag"
)

// Ensure Store implements linktag.RecordStore at compile time.
var _ linktag.RecordStore = (*Store)(nil)

// Store persists records as a single pretty-printed JSON array so the
// output stays inspectable with ordinary tools. Save replaces the file
// atomically via a temp-file rename.
type Store struct {
	path string
}

// NewStore creates a Store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Exists reports whether the output file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the saved records in their original order.
func (s *Store) Load(ctx context.Context) ([]*linktag.Record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, linktag.Errorf(linktag.ENOTFOUND, "result file %q not found", s.path)
	} else if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.path, err)
	}

	var records []*linktag.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", s.path, err)
	}
	return records, nil
}

// Save replaces the stored collection with the given records.
func (s *Store) Save(ctx context.Context, records []*linktag.Record) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("creating temp output file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %q: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %q: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("committing %q: %w", s.path, err)
	}
	return nil
}
