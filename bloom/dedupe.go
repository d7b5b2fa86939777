// Package bloom provides probabilistic page deduplication for the crawler.
// Many syllabus IDs resolve to identical pages (the site serves the same
// version under several IDs), so the crawler skips content it has already
// processed within a run.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Ensure Deduper satisfies the crawler's dedupe contract at compile time.
var _ interface {
	Seen(string) bool
	EstimatedCount() uint
} = (*Deduper)(nil)

// Deduper tracks content hashes seen during a crawl run. A positive answer
// may rarely be wrong (false positive), which for dedupe means an
// occasional page skipped; a negative answer is always right.
type Deduper struct {
	f *bloom.BloomFilter
}

// NewDeduper creates a Deduper sized for n expected pages with the given
// false positive rate.
func NewDeduper(n uint, fpRate float64) *Deduper {
	return &Deduper{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether the content hash was already recorded, and records
// it if not.
func (d *Deduper) Seen(contentHash string) bool {
	return d.f.TestAndAddString(contentHash)
}

// EstimatedCount returns the approximate number of distinct pages recorded.
func (d *Deduper) EstimatedCount() uint {
	return uint(d.f.ApproximatedSize())
}
