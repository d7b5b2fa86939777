package main

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/henfal/mdubot/populate"
	"github.com/schollz/progressbar/v3"
)

// Run executes the populate command.
func (c *PopulateCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = deps.Config.Index.Concurrency
	}

	populator := &populate.Populator{
		Courses:      deps.Courses,
		Programs:     deps.Programs,
		Chunks:       deps.Chunks,
		Embedder:     deps.Embedder,
		Concurrency:  concurrency,
		ChunkSize:    deps.Config.Index.ChunkSize,
		ChunkOverlap: deps.Config.Index.ChunkOverlap,
	}

	// The progress callback runs from concurrent workers.
	var mu sync.Mutex
	var bar *progressbar.ProgressBar
	result, err := populator.PopulateAll(deps.Ctx, func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(deps.Stderr),
				progressbar.OptionSetDescription("embedding"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(completed)
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Is Ollama running? Start it with 'ollama serve'")
		return err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	color.New(color.FgGreen).Fprintf(deps.Stdout, "Indexed %d syllabi as %d chunks", result.Owners, result.Chunks)
	fmt.Fprintf(deps.Stdout, " (%d failed)\n", result.Failed)
	return nil
}
