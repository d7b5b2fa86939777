package mdubot

import "context"

// Page represents a fetched syllabus page before extraction.
type Page struct {
	SourceID int
	URL      string
	HTML     string
}

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML content at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Pacer controls the delay between consecutive crawl requests.
type Pacer interface {
	// Wait blocks for the configured inter-request delay.
	// Returns an error if the context is canceled while waiting.
	Wait(ctx context.Context) error
}

// SnapshotStore persists raw HTML pages with atomic semantics.
// Save writes to a temporary location; Commit makes the crawl's snapshots
// permanent; Abort discards pending snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
