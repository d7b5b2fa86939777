package mock

import (
	"context"

	"github.com/henfal/mdubot"
)

var _ mdubot.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of mdubot.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts mdubot.SearchOptions) ([]mdubot.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts mdubot.SearchOptions) ([]mdubot.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
