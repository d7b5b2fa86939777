// Package crawl provides syllabus crawling orchestration. It walks numeric
// ID ranges on mdu.se, fetches each page with retry, snapshots the raw
// HTML, extracts structured data, and stores the result.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/henfal/mdubot"
)

// Base URLs for the two syllabus page types. Pages are addressed by a
// numeric query parameter, e.g. kursplan?id=25000.
const (
	CourseBaseURL  = "https://www.mdu.se/utbildning/kursplan"
	ProgramBaseURL = "https://www.mdu.se/utbildning/utbildningsplan"
)

// Deduper answers whether a content hash was already seen this run.
type Deduper interface {
	Seen(contentHash string) bool
}

// Crawler orchestrates crawling of syllabus ID ranges.
type Crawler struct {
	Fetcher          mdubot.Fetcher
	CourseExtractor  mdubot.CourseExtractor
	ProgramExtractor mdubot.ProgramExtractor
	Courses          mdubot.CourseService
	Programs         mdubot.ProgramService
	Snapshots        mdubot.SnapshotStore
	Pacer            mdubot.Pacer
	Deduper          Deduper
	RetryDelays      []time.Duration

	// CourseURL and ProgramURL override the production base URLs.
	CourseURL  string
	ProgramURL string
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved      int
	Skipped    int
	Duplicates int
	Failed     int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSaved
	ProgressSkipped
	ProgressDuplicate
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	SourceID  int
	Error     error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// CrawlCourses crawls kursplan pages for every ID in [low, high] and saves
// extracted courses. The progress callback, if provided, receives events as
// crawling proceeds.
func (c *Crawler) CrawlCourses(ctx context.Context, low, high int, progress ProgressFunc) (*Result, error) {
	baseURL := c.CourseURL
	if baseURL == "" {
		baseURL = CourseBaseURL
	}
	return c.run(ctx, baseURL, low, high, progress, func(ctx context.Context, html string, sourceID int, url string) error {
		course, err := c.CourseExtractor.ExtractCourse(html, sourceID)
		if err != nil {
			return err
		}
		course.URL = url
		return c.Courses.CreateCourse(ctx, course)
	})
}

// CrawlPrograms crawls utbildningsplan pages for every ID in [low, high]
// and saves extracted programs.
func (c *Crawler) CrawlPrograms(ctx context.Context, low, high int, progress ProgressFunc) (*Result, error) {
	baseURL := c.ProgramURL
	if baseURL == "" {
		baseURL = ProgramBaseURL
	}
	return c.run(ctx, baseURL, low, high, progress, func(ctx context.Context, html string, sourceID int, url string) error {
		program, err := c.ProgramExtractor.ExtractProgram(html, sourceID)
		if err != nil {
			return err
		}
		program.URL = url
		return c.Programs.CreateProgram(ctx, program)
	})
}

// run walks the ID range sequentially. Sequential fetching with pacing
// keeps the load on the university site polite; the range is the unit of
// parallelism, not individual pages.
func (c *Crawler) run(ctx context.Context, baseURL string, low, high int, progress ProgressFunc, store func(ctx context.Context, html string, sourceID int, url string) error) (*Result, error) {
	if low > high {
		return nil, mdubot.Errorf(mdubot.EINVALID, "invalid ID range %d-%d", low, high)
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	total := high - low + 1
	notify := func(event ProgressEvent) {
		if progress != nil {
			progress(event)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	result := &Result{}
	completed := 0

	for id := low; id <= high; id++ {
		if err := ctx.Err(); err != nil {
			c.abortSnapshots()
			return nil, err
		}
		if id > low && c.Pacer != nil {
			if err := c.Pacer.Wait(ctx); err != nil {
				c.abortSnapshots()
				return nil, err
			}
		}
		completed++

		url := fmt.Sprintf("%s?id=%d", baseURL, id)
		html, err := FetchWithRetryDelays(ctx, url, c.Fetcher.Fetch, nil, delays)
		if err != nil {
			if ctx.Err() != nil {
				c.abortSnapshots()
				return nil, ctx.Err()
			}
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, SourceID: id, Error: err})
			continue
		}

		// Unallocated IDs serve an unfilled page template.
		if mdubot.IsPlaceholder(html) {
			result.Skipped++
			notify(ProgressEvent{Type: ProgressSkipped, Completed: completed, Total: total, SourceID: id})
			continue
		}

		if c.Snapshots != nil {
			if err := c.Snapshots.Save(ctx, &mdubot.Page{SourceID: id, URL: url, HTML: html}); err != nil {
				result.Failed++
				notify(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, SourceID: id, Error: err})
				continue
			}
		}

		// The site serves the same syllabus version under several IDs.
		if c.Deduper != nil && c.Deduper.Seen(hashContent(html)) {
			result.Duplicates++
			notify(ProgressEvent{Type: ProgressDuplicate, Completed: completed, Total: total, SourceID: id})
			continue
		}

		if err := store(ctx, html, id, url); err != nil {
			if mdubot.ErrorCode(err) == mdubot.EINVALID {
				result.Skipped++
				notify(ProgressEvent{Type: ProgressSkipped, Completed: completed, Total: total, SourceID: id})
				continue
			}
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, SourceID: id, Error: err})
			continue
		}

		result.Saved++
		notify(ProgressEvent{Type: ProgressSaved, Completed: completed, Total: total, SourceID: id})
	}

	if c.Snapshots != nil {
		if err := c.Snapshots.Commit(); err != nil {
			return nil, fmt.Errorf("commit snapshots: %w", err)
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}

func (c *Crawler) abortSnapshots() {
	if c.Snapshots != nil {
		c.Snapshots.Abort()
	}
}

// hashContent returns the xxhash of content as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
