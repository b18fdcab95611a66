package fs

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/linktag/linktag"
	"github.com/linktag/linktag/bloom"
)

// Bloom filter sizing for input deduplication.
const (
	sourceExpectedURLs      = 10000
	sourceFalsePositiveRate = 0.01
)

// Ensure FileSource implements linktag.URLSource at compile time.
var _ linktag.URLSource = (*FileSource)(nil)

// FileSource reads newline-separated URLs from a text file.
// Blank lines are skipped and duplicate URLs are dropped, preserving
// first-occurrence order.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource reading from the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// URLs returns the ordered, deduplicated URL list.
// Returns ENOTFOUND if the input file does not exist.
func (s *FileSource) URLs(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, linktag.Errorf(linktag.ENOTFOUND, "input file %q not found", s.path)
	} else if err != nil {
		return nil, fmt.Errorf("opening %q: %w", s.path, err)
	}
	defer f.Close()

	// The Bloom filter answers "definitely new" cheaply; a positive may
	// be false, so it is confirmed against the exact set before a URL
	// is dropped. Every input URL is guaranteed to survive exactly once.
	filter := bloom.NewFilter(sourceExpectedURLs, sourceFalsePositiveRate)
	accepted := make(map[string]bool)
	var urls []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if filter.Seen(line) && accepted[line] {
			continue
		}
		accepted[line] = true
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.path, err)
	}

	return urls, nil
}
