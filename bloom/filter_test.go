package bloom_test

import (
	"fmt"
	"testing"

	"github.com/linktag/linktag/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Seen("https://example.com/a"))
	assert.True(t, f.Seen("https://example.com/a"))
	assert.False(t, f.Seen("https://example.com/b"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	for i := 0; i < 100; i++ {
		f.Seen(fmt.Sprintf("https://example.com/page-%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 100, int(count), 10)
}
