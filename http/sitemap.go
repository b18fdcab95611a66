package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/linktag/linktag"
)

// Ensure SitemapSource implements linktag.URLSource at compile time.
var _ linktag.URLSource = (*SitemapSource)(nil)

// SitemapSource discovers the input URL list from a site's sitemap.
// The base URL may point directly at a sitemap XML file; otherwise
// sitemaps are discovered via robots.txt with a /sitemap.xml fallback.
// Sitemap index files are followed recursively and duplicate URLs are
// dropped, preserving sitemap order.
type SitemapSource struct {
	client  *http.Client
	baseURL string
}

// NewSitemapSource creates a SitemapSource for the given base URL.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client, baseURL string) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client, baseURL: baseURL}
}

// URLs returns every page URL listed by the site's sitemaps.
// When the base URL has a non-root path, only URLs under that path are
// returned.
func (s *SitemapSource) URLs(ctx context.Context) ([]string, error) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, linktag.Errorf(linktag.EINVALID, "invalid sitemap URL %q", s.baseURL)
	}

	var sitemaps []string
	if strings.HasSuffix(base.Path, ".xml") {
		sitemaps = []string{s.baseURL}
	} else {
		sitemaps, err = s.discoverSitemaps(ctx, base)
		if err != nil {
			return nil, err
		}
		if len(sitemaps) == 0 {
			return nil, linktag.Errorf(linktag.ENOTFOUND, "no sitemap found for %q", s.baseURL)
		}
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	var urls []string
	for _, sm := range sitemaps {
		found, err := s.readSitemap(ctx, sm, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			urls = append(urls, u)
		}
	}

	if prefix := base.Path; prefix != "" && prefix != "/" && !strings.HasSuffix(prefix, ".xml") {
		urls = filterByPathPrefix(urls, prefix)
	}

	return urls, nil
}

// discoverSitemaps finds sitemap URLs from robots.txt, falling back to
// /sitemap.xml at the site root.
func (s *SitemapSource) discoverSitemaps(ctx context.Context, base *url.URL) ([]string, error) {
	root := *base
	root.Path = ""

	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps := s.sitemapsFromRobots(ctx, robotsURL.String()); len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	ok, err := s.urlExists(ctx, fallback.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if ok {
		return []string{fallback.String()}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
// Any fetch or read error just means "none found".
func (s *SitemapSource) sitemapsFromRobots(ctx context.Context, robotsURL string) []string {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	return sitemaps
}

// readSitemap fetches and parses one sitemap, recursing into sitemap
// index entries.
func (s *SitemapSource) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML from %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range root.SelectElements("sitemap") {
			loc := child.SelectElement("loc")
			if loc == nil {
				continue
			}
			childURL := strings.TrimSpace(loc.Text())
			if childURL == "" {
				continue
			}
			found, err := s.readSitemap(ctx, childURL, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	var urls []string
	for _, entry := range root.SelectElements("url") {
		loc := entry.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// filterByPathPrefix keeps URLs whose path is under prefix, respecting
// path boundaries (/docs matches /docs/intro but not /documentation).
func filterByPathPrefix(urls []string, prefix string) []string {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	var filtered []string
	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if strings.HasPrefix(parsed.Path, prefix) || parsed.Path+"/" == prefix {
			filtered = append(filtered, raw)
		}
	}
	return filtered
}

func (s *SitemapSource) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, linktag.Errorf(linktag.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

func (s *SitemapSource) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
