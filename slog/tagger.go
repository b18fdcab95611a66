package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/linktag/linktag"
)

// Ensure LoggingTagger implements linktag.Tagger.
var _ linktag.Tagger = (*LoggingTagger)(nil)

// LoggingTagger wraps a Tagger with logging.
type LoggingTagger struct {
	next   linktag.Tagger
	logger *slog.Logger
}

// NewLoggingTagger creates a new LoggingTagger.
func NewLoggingTagger(next linktag.Tagger, logger *slog.Logger) *LoggingTagger {
	return &LoggingTagger{next: next, logger: logger}
}

// GenerateTags delegates to the wrapped tagger and logs the operation.
func (t *LoggingTagger) GenerateTags(ctx context.Context, title, body string) (tags string, err error) {
	defer func(begin time.Time) {
		t.logger.Info("generate tags",
			"title", title,
			"tags", tags,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.GenerateTags(ctx, title, body)
}
