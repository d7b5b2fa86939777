package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/henfal/mdubot"
	"github.com/henfal/mdubot/sqlite"
	"github.com/henfal/mdubot/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *yaml.Config

	DB       *sqlite.DB
	Courses  mdubot.CourseService
	Programs mdubot.ProgramService
	Chunks   mdubot.ChunkService

	// Command-specific dependencies, wired only when the command needs them.
	Fetcher   mdubot.Fetcher
	Converter mdubot.Converter
	Embedder  mdubot.Embedder
	Search    mdubot.SearchService
	Asker     mdubot.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose    bool   `short:"v" help:"Enable debug logging"`
	ConfigPath string `name:"config" help:"Path to a mdubot config file"`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl course and program syllabus pages by ID range"`
	Populate PopulateCmd `cmd:"" help:"Embed crawled syllabi into the search index"`
	Ask      AskCmd      `cmd:"" help:"Ask a single question about courses and programs"`
	Chat     ChatCmd     `cmd:"" help:"Interactive question answering session"`
	List     ListCmd     `cmd:"" help:"List crawled courses and programs"`
	Export   ExportCmd   `cmd:"" help:"Export the catalog as JSON Lines files"`
	Delete   DeleteCmd   `cmd:"" help:"Delete all versions of a course or program code"`
}

// Range is an inclusive numeric ID range expressed as "LOW:HIGH".
type Range struct {
	Low  int
	High int
}

// UnmarshalText parses "LOW:HIGH". A single number is a range of one.
func (r *Range) UnmarshalText(text []byte) error {
	s := string(text)
	lowStr, highStr, found := strings.Cut(s, ":")
	if !found {
		highStr = lowStr
	}

	low, err := strconv.Atoi(strings.TrimSpace(lowStr))
	if err != nil {
		return fmt.Errorf("invalid range %q: expected LOW:HIGH", s)
	}
	high, err := strconv.Atoi(strings.TrimSpace(highStr))
	if err != nil {
		return fmt.Errorf("invalid range %q: expected LOW:HIGH", s)
	}
	if low < 0 || high < low {
		return fmt.Errorf("invalid range %q: LOW must be <= HIGH and non-negative", s)
	}

	r.Low, r.High = low, high
	return nil
}

func (r *Range) String() string {
	return fmt.Sprintf("%d:%d", r.Low, r.High)
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	CourseRange  *Range        `name:"course-range" help:"Course ID range, e.g. 25000:35000"`
	ProgramRange *Range        `name:"program-range" help:"Program ID range, e.g. 200:2000"`
	NoDelay      bool          `help:"Disable the delay between requests"`
	MinDelay     time.Duration `help:"Minimum delay between requests (default from config)"`
	MaxDelay     time.Duration `help:"Maximum delay between requests (default from config)"`
	OutputDir    string        `help:"Snapshot directory (default from config)"`
}

// PopulateCmd is the "populate" subcommand.
type PopulateCmd struct {
	Concurrency int `short:"c" help:"Concurrent embedding limit (default from config)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about MDU courses or programs"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Kind string `arg:"" optional:"" default:"" enum:",courses,programs" help:"Restrict to courses or programs"`
	Code string `help:"Restrict to one course or program code"`
	All  bool   `help:"Show every crawled version, not just the newest"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" optional:"" help:"Output directory (default: exports)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Code  string `arg:"" help:"Course or program code, e.g. dva117 or gkv01"`
	Force bool   `help:"Confirm deletion"`
}
