package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/henfal/mdubot"
	"github.com/henfal/mdubot/bloom"
	"github.com/henfal/mdubot/crawl"
	"github.com/henfal/mdubot/fs"
	"github.com/henfal/mdubot/goquery"
	"github.com/schollz/progressbar/v3"
)

// dedupeExpectedPages sizes the Bloom filter for a full catalog crawl.
const dedupeExpectedPages = 100000

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if c.CourseRange == nil && c.ProgramRange == nil {
		return mdubot.Errorf(mdubot.EINVALID, "at least one of --course-range or --program-range must be specified")
	}

	outputDir := c.OutputDir
	if outputDir == "" {
		outputDir = deps.Config.Crawler.SnapshotDir
	}

	var pacer mdubot.Pacer
	if !c.NoDelay {
		minDelay := c.MinDelay
		if minDelay == 0 {
			minDelay = secondsToDuration(deps.Config.Crawler.MinDelaySecs)
		}
		maxDelay := c.MaxDelay
		if maxDelay == 0 {
			maxDelay = secondsToDuration(deps.Config.Crawler.MaxDelaySecs)
		}
		pacer = crawl.NewRandomPacer(minDelay, maxDelay)
	}

	crawler := &crawl.Crawler{
		Fetcher:          deps.Fetcher,
		CourseExtractor:  goquery.NewCourseExtractor(),
		ProgramExtractor: goquery.NewProgramExtractor(),
		Courses:          deps.Courses,
		Programs:         deps.Programs,
		Pacer:            pacer,
		Deduper:          bloom.NewDeduper(dedupeExpectedPages, 0.01),
	}

	if c.CourseRange != nil {
		fmt.Fprintf(deps.Stdout, "Crawling courses %d-%d\n", c.CourseRange.Low, c.CourseRange.High)
		crawler.Snapshots = fs.NewSnapshotStore(outputDir, "course", deps.Converter)
		result, err := crawler.CrawlCourses(deps.Ctx, c.CourseRange.Low, c.CourseRange.High, crawlProgress(deps, "courses"))
		if err != nil {
			return err
		}
		printCrawlResult(deps, "courses", result)
	}

	if c.ProgramRange != nil {
		fmt.Fprintf(deps.Stdout, "Crawling programs %d-%d\n", c.ProgramRange.Low, c.ProgramRange.High)
		crawler.Snapshots = fs.NewSnapshotStore(outputDir, "program", deps.Converter)
		result, err := crawler.CrawlPrograms(deps.Ctx, c.ProgramRange.Low, c.ProgramRange.High, crawlProgress(deps, "programs"))
		if err != nil {
			return err
		}
		printCrawlResult(deps, "programs", result)
	}

	return nil
}

// crawlProgress renders a progress bar on stderr so stdout stays clean for
// the summary.
func crawlProgress(deps *Dependencies, label string) crawl.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			bar = progressbar.NewOptions(event.Total,
				progressbar.OptionSetWriter(deps.Stderr),
				progressbar.OptionSetDescription(label),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		case crawl.ProgressFailed:
			deps.Logger.Warn("crawl failed", "sourceID", event.SourceID, "err", event.Error)
			_ = bar.Add(1)
		case crawl.ProgressFinished:
			_ = bar.Finish()
		default:
			_ = bar.Add(1)
		}
	}
}

func printCrawlResult(deps *Dependencies, label string, result *crawl.Result) {
	color.New(color.FgGreen).Fprintf(deps.Stdout, "Crawled %s: %d saved", label, result.Saved)
	fmt.Fprintf(deps.Stdout, " (%d empty IDs, %d duplicates, %d failed)\n",
		result.Skipped, result.Duplicates, result.Failed)
}
