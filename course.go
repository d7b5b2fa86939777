package mdubot

import (
	"context"
	"time"
)

// Course represents one crawled version of a course syllabus ("kursplan").
// Several versions of the same course code can coexist; the one with the
// latest ValidFrom date is the current version.
type Course struct {
	ID          string            `json:"id"`
	SourceID    int               `json:"sourceId"`
	Code        string            `json:"code"` // kurskod, e.g. "dva117"
	Name        string            `json:"name"`
	Active      bool              `json:"active"`
	ValidFrom   time.Time         `json:"validFrom"`
	URL         string            `json:"url"`
	Details     map[string]string `json:"details"`  // details block key/values
	Sections    map[string]string `json:"sections"` // text section heading -> content
	ContentHash string            `json:"contentHash"`
	CrawledAt   time.Time         `json:"crawledAt"`
}

// Validate returns an error if the course contains invalid fields.
func (c *Course) Validate() error {
	if c.SourceID <= 0 {
		return Errorf(EINVALID, "course source ID required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "course URL required")
	}
	return nil
}

// CourseService represents a service for managing crawled courses.
type CourseService interface {
	// CreateCourse creates a new course version.
	CreateCourse(ctx context.Context, course *Course) error

	// FindCourseByID retrieves a course by ID.
	// Returns ENOTFOUND if the course does not exist.
	FindCourseByID(ctx context.Context, id string) (*Course, error)

	// FindCourses retrieves courses matching the filter, newest first.
	FindCourses(ctx context.Context, filter CourseFilter) ([]*Course, error)

	// DeleteCourse permanently removes a course version and its chunks.
	// Returns ENOTFOUND if the course does not exist.
	DeleteCourse(ctx context.Context, id string) error

	// DeleteCoursesByCode removes all versions of a course code.
	DeleteCoursesByCode(ctx context.Context, code string) error
}

// CourseFilter represents a filter for FindCourses.
type CourseFilter struct {
	ID       *string `json:"id"`
	Code     *string `json:"code"`
	SourceID *int    `json:"sourceId"`

	// NewestOnly restricts results to the newest version per course code.
	NewestOnly bool `json:"newestOnly"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
