// Package mock provides function-field test doubles for the domain
// interfaces.
package mock

import (
	"context"

	"github.com/linktag/linktag"
)

var _ linktag.Fetcher = (*Fetcher)(nil)

type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ linktag.DomainLimiter = (*DomainLimiter)(nil)

type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ linktag.Extractor = (*Extractor)(nil)

type Extractor struct {
	ExtractFn func(html string) (*linktag.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*linktag.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ linktag.Tagger = (*Tagger)(nil)

type Tagger struct {
	GenerateTagsFn func(ctx context.Context, title, body string) (string, error)
}

func (t *Tagger) GenerateTags(ctx context.Context, title, body string) (string, error) {
	return t.GenerateTagsFn(ctx, title, body)
}

var _ linktag.ContentCache = (*ContentCache)(nil)

type ContentCache struct {
	ExistsFn func(url string) bool
	GetFn    func(url string) (string, error)
	PutFn    func(url, html string) error
}

func (c *ContentCache) Exists(url string) bool {
	return c.ExistsFn(url)
}

func (c *ContentCache) Get(url string) (string, error) {
	return c.GetFn(url)
}

func (c *ContentCache) Put(url, html string) error {
	return c.PutFn(url, html)
}

var _ linktag.RecordStore = (*RecordStore)(nil)

type RecordStore struct {
	ExistsFn func() bool
	LoadFn   func(ctx context.Context) ([]*linktag.Record, error)
	SaveFn   func(ctx context.Context, records []*linktag.Record) error
}

func (s *RecordStore) Exists() bool {
	return s.ExistsFn()
}

func (s *RecordStore) Load(ctx context.Context) ([]*linktag.Record, error) {
	return s.LoadFn(ctx)
}

func (s *RecordStore) Save(ctx context.Context, records []*linktag.Record) error {
	return s.SaveFn(ctx, records)
}

var _ linktag.URLSource = (*URLSource)(nil)

type URLSource struct {
	URLsFn func(ctx context.Context) ([]string, error)
}

func (s *URLSource) URLs(ctx context.Context) ([]string, error) {
	return s.URLsFn(ctx)
}
