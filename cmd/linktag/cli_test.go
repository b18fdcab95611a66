package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linktag/linktag"
	"github.com/linktag/linktag/mock"
	"github.com/linktag/linktag/pipeline"
)

func TestResolveMode(t *testing.T) {
	t.Parallel()

	noPrompt := func() (linktag.Mode, error) {
		t.Fatal("prompt should not be shown")
		return linktag.ModeAbort, nil
	}

	t.Run("explicit flag wins", func(t *testing.T) {
		t.Parallel()

		store := &mock.RecordStore{ExistsFn: func() bool { return true }}
		for flag, want := range map[string]linktag.Mode{
			"full":  linktag.ModeFullProcess,
			"topup": linktag.ModeTopUp,
			"abort": linktag.ModeAbort,
		} {
			mode, err := resolveMode(flag, store, noPrompt)
			require.NoError(t, err)
			assert.Equal(t, want, mode)
		}
	})

	t.Run("defaults to full process without existing output", func(t *testing.T) {
		t.Parallel()

		store := &mock.RecordStore{ExistsFn: func() bool { return false }}
		mode, err := resolveMode("", store, noPrompt)
		require.NoError(t, err)
		assert.Equal(t, linktag.ModeFullProcess, mode)
	})

	t.Run("prompts when output exists", func(t *testing.T) {
		t.Parallel()

		store := &mock.RecordStore{ExistsFn: func() bool { return true }}
		prompted := false
		mode, err := resolveMode("", store, func() (linktag.Mode, error) {
			prompted = true
			return linktag.ModeTopUp, nil
		})
		require.NoError(t, err)
		assert.True(t, prompted)
		assert.Equal(t, linktag.ModeTopUp, mode)
	})
}

func newCLIDeps(t *testing.T) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cache := &mock.ContentCache{
		ExistsFn: func(url string) bool { return false },
		PutFn:    func(url, html string) error { return nil },
	}
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html><title>T</title><p>body</p></html>", nil
		},
	}
	store := &mock.RecordStore{
		ExistsFn: func() bool { return false },
		SaveFn:   func(ctx context.Context, records []*linktag.Record) error { return nil },
	}
	deps := &Dependencies{
		Ctx:    context.Background(),
		Stdout: &stdout,
		Stderr: &stderr,
		Store:  store,
		Mode:   linktag.ModeFullProcess,
		SelectMode: func() (linktag.Mode, error) {
			t.Fatal("prompt should not be shown")
			return linktag.ModeAbort, nil
		},
		Pipeline: &pipeline.Pipeline{
			Source: &mock.URLSource{
				URLsFn: func(ctx context.Context) ([]string, error) {
					return []string{"https://example.com/a"}, nil
				},
			},
			Fetch: pipeline.NewCachedFetcher(cache, fetcher, nil, nil),
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*linktag.ExtractResult, error) {
					return &linktag.ExtractResult{Title: "T", Body: "body"}, nil
				},
			},
			Tagger: &mock.Tagger{
				GenerateTagsFn: func(ctx context.Context, title, body string) (string, error) {
					return "#tag", nil
				},
			},
			Store: store,
		},
	}
	return deps, &stdout, &stderr
}

func TestCLI_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints progress and summary", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newCLIDeps(t)
		cli := &CLI{Output: "url_data.json"}

		err := cli.Run(deps)
		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "[1/1] https://example.com/a: fetched")
		assert.Contains(t, out, "Processed 1 URLs")
		assert.Contains(t, out, "saved to url_data.json")
	})

	t.Run("topup reports up to date", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newCLIDeps(t)
		store := &mock.RecordStore{
			ExistsFn: func() bool { return true },
			LoadFn: func(ctx context.Context) ([]*linktag.Record, error) {
				return []*linktag.Record{
					{URL: "https://example.com/a", Title: "T", Body: "b", Hashtags: "#tag"},
				}, nil
			},
		}
		deps.Store = store
		deps.Pipeline.Store = store
		deps.Mode = linktag.ModeTopUp
		cli := &CLI{Output: "url_data.json"}

		err := cli.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "All records already have hashtags.")
	})

	t.Run("fetch failures go to stderr", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newCLIDeps(t)
		cache := &mock.ContentCache{
			ExistsFn: func(url string) bool { return false },
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", linktag.Errorf(linktag.EUNAVAILABLE, "HTTP 500 for %s", url)
			},
		}
		deps.Pipeline.Fetch = pipeline.NewCachedFetcher(cache, fetcher, nil, nil)
		cli := &CLI{Output: "url_data.json"}

		err := cli.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "fetch failed")
		assert.Contains(t, stdout.String(), "1 fetch failures")
	})
}
