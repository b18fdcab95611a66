package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/linktag/linktag"
	linkrod "github.com/linktag/linktag/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time verification that Fetcher implements linktag.Fetcher.
var _ linktag.Fetcher = (*linkrod.Fetcher)(nil)

// TestFetcher_Integration exercises a real browser and is skipped unless
// ROD_INTEGRATION is set (Chrome or Chromium must be installed).
func TestFetcher_Integration(t *testing.T) {
	if os.Getenv("ROD_INTEGRATION") == "" {
		t.Skip("ROD_INTEGRATION not set")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Rendered</title></head>` +
			`<body><script>document.title = "Rendered by JS"</script><p>hello</p></body></html>`))
	}))
	defer server.Close()

	fetcher, err := linkrod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "hello")
}
