// Package fs provides file-based implementations of the linktag cache,
// record store, and URL source.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/linktag/linktag"
)

// Ensure Cache implements linktag.ContentCache at compile time.
var _ linktag.ContentCache = (*Cache)(nil)

// Cache is a content-addressed on-disk HTML cache. Entries live in a
// flat directory, one file per URL, named by the URL's host plus a hex
// digest of the full URL so keys stay unique, deterministic, and
// human-scannable.
type Cache struct {
	dir    string
	maxAge time.Duration
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMaxAge makes entries older than d invisible to Exists and Get.
// Zero (the default) keeps entries forever.
func WithMaxAge(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.maxAge = d
	}
}

// NewCache creates a Cache rooted at dir, creating the directory if
// needed.
func NewCache(dir string, opts ...CacheOption) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	c := &Cache{dir: dir}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Key returns the cache filename for a URL:
// <host with dots replaced by underscores>_<xxhash of the URL>.html.
func Key(rawURL string) string {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = strings.ReplaceAll(u.Host, ".", "_")
	}
	digest := xxhash.Sum64String(rawURL)
	return fmt.Sprintf("%s_%016x.html", host, digest)
}

func (c *Cache) path(url string) string {
	return filepath.Join(c.dir, Key(url))
}

// Exists reports whether a usable entry exists for the URL.
func (c *Cache) Exists(url string) bool {
	info, err := os.Stat(c.path(url))
	if err != nil {
		return false
	}
	if c.maxAge > 0 && time.Since(info.ModTime()) > c.maxAge {
		return false
	}
	return true
}

// Get returns the cached HTML for the URL. Undecodable bytes are
// replaced rather than failing.
func (c *Cache) Get(url string) (string, error) {
	if !c.Exists(url) {
		return "", linktag.Errorf(linktag.ENOTFOUND, "no cache entry for %q", url)
	}
	data, err := os.ReadFile(c.path(url))
	if err != nil {
		return "", fmt.Errorf("reading cache entry for %q: %w", url, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// Put stores the HTML for the URL. The entry is written to a temporary
// file and renamed into place so a failed write never leaves a partial
// entry behind.
func (c *Cache) Put(url string, html string) error {
	tmp, err := os.CreateTemp(c.dir, Key(url)+".tmp")
	if err != nil {
		return fmt.Errorf("creating cache temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing cache entry for %q: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing cache entry for %q: %w", url, err)
	}
	if err := os.Rename(tmpName, c.path(url)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("committing cache entry for %q: %w", url, err)
	}
	return nil
}
