package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/henfal/mdubot"
)

// Ensure LoggingSearchService implements mdubot.SearchService.
var _ mdubot.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with retrieval logging.
type LoggingSearchService struct {
	next   mdubot.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next mdubot.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs what was retrieved.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts mdubot.SearchOptions) (results []mdubot.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"courseCode", opts.CourseCode,
			"programCode", opts.ProgramCode,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}
