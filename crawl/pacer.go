package crawl

import (
	"context"
	"math/rand"
	"time"

	"github.com/henfal/mdubot"
)

// Default pacing bounds between requests to the university site.
const (
	DefaultMinDelay = 2 * time.Second
	DefaultMaxDelay = 5 * time.Second
)

// Ensure RandomPacer implements mdubot.Pacer at compile time.
var _ mdubot.Pacer = (*RandomPacer)(nil)

// RandomPacer sleeps a random duration within [min, max] between requests,
// so the crawl doesn't hit the site at a fixed cadence.
type RandomPacer struct {
	min time.Duration
	max time.Duration
}

// NewRandomPacer creates a RandomPacer with the given bounds. Bounds at or
// below zero fall back to the defaults.
func NewRandomPacer(min, max time.Duration) *RandomPacer {
	if min <= 0 {
		min = DefaultMinDelay
	}
	if max < min {
		max = min
	}
	return &RandomPacer{min: min, max: max}
}

// Wait blocks for a random duration within the pacer's bounds, or until
// the context is canceled.
func (p *RandomPacer) Wait(ctx context.Context) error {
	delay := p.min
	if p.max > p.min {
		delay += time.Duration(rand.Int63n(int64(p.max - p.min)))
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
