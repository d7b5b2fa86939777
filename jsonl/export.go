// Package jsonl exports the crawled catalog as JSON Lines files, one
// record per line: courses.jsonl, programs.jsonl, and newest_versions.jsonl
// with the current version of every code.
package jsonl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/henfal/mdubot"
)

// Export file names.
const (
	CoursesFile        = "courses.jsonl"
	ProgramsFile       = "programs.jsonl"
	NewestVersionsFile = "newest_versions.jsonl"
)

// NewestVersion is one line of newest_versions.jsonl: the current version
// of a course or program code.
type NewestVersion struct {
	Code      string    `json:"code"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	ValidFrom time.Time `json:"validFrom"`
	SourceID  int       `json:"sourceId"`
	Active    bool      `json:"active"`
}

// Exporter writes catalog exports.
type Exporter struct {
	Courses  mdubot.CourseService
	Programs mdubot.ProgramService
}

// ExportAll writes all three export files to dir, creating it if needed.
func (e *Exporter) ExportAll(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	courses, err := e.Courses.FindCourses(ctx, mdubot.CourseFilter{})
	if err != nil {
		return fmt.Errorf("find courses: %w", err)
	}
	programs, err := e.Programs.FindPrograms(ctx, mdubot.ProgramFilter{})
	if err != nil {
		return fmt.Errorf("find programs: %w", err)
	}

	if err := writeLines(filepath.Join(dir, CoursesFile), courses); err != nil {
		return err
	}
	if err := writeLines(filepath.Join(dir, ProgramsFile), programs); err != nil {
		return err
	}

	newestCourses, err := e.Courses.FindCourses(ctx, mdubot.CourseFilter{NewestOnly: true})
	if err != nil {
		return fmt.Errorf("find newest courses: %w", err)
	}
	newestPrograms, err := e.Programs.FindPrograms(ctx, mdubot.ProgramFilter{NewestOnly: true})
	if err != nil {
		return fmt.Errorf("find newest programs: %w", err)
	}

	newest := make([]NewestVersion, 0, len(newestCourses)+len(newestPrograms))
	for _, course := range newestCourses {
		newest = append(newest, NewestVersion{
			Code:      course.Code,
			Kind:      string(mdubot.ChunkCourse),
			Name:      course.Name,
			ValidFrom: course.ValidFrom,
			SourceID:  course.SourceID,
			Active:    course.Active,
		})
	}
	for _, program := range newestPrograms {
		newest = append(newest, NewestVersion{
			Code:      program.Code,
			Kind:      string(mdubot.ChunkProgram),
			Name:      program.Name,
			ValidFrom: program.ValidFrom,
			SourceID:  program.SourceID,
			Active:    program.Active,
		})
	}

	return writeLines(filepath.Join(dir, NewestVersionsFile), newest)
}

// writeLines writes each record as one JSON line.
func writeLines[T any](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteAll(f, records); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// WriteAll encodes records to w, one JSON document per line.
func WriteAll[T any](w io.Writer, records []T) error {
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return nil
}
