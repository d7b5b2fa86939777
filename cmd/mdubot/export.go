package main

import (
	"fmt"

	"github.com/henfal/mdubot"
	"github.com/henfal/mdubot/jsonl"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	dir := c.Dir
	if dir == "" {
		dir = "exports"
	}

	exporter := &jsonl.Exporter{Courses: deps.Courses, Programs: deps.Programs}
	if err := exporter.ExportAll(deps.Ctx, dir); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mdubot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %s, %s and %s to %s\n",
		jsonl.CoursesFile, jsonl.ProgramsFile, jsonl.NewestVersionsFile, dir)
	return nil
}
