package mdubot

import (
	"context"
	"time"
)

// Program represents one crawled version of a program syllabus
// ("utbildningsplan").
type Program struct {
	ID          string            `json:"id"`
	SourceID    int               `json:"sourceId"`
	Code        string            `json:"code"` // programkod, e.g. "gkv01"
	Name        string            `json:"name"`
	Active      bool              `json:"active"`
	ValidFrom   time.Time         `json:"validFrom"`
	URL         string            `json:"url"`
	Languages   []string          `json:"languages"` // undervisningsspråk
	Details     map[string]string `json:"details"`
	Sections    map[string]string `json:"sections"`
	Goals       map[string]string `json:"goals"` // learning outcome sections
	Years       map[string]string `json:"years"` // årskurs heading -> content
	ContentHash string            `json:"contentHash"`
	CrawledAt   time.Time         `json:"crawledAt"`
}

// Validate returns an error if the program contains invalid fields.
func (p *Program) Validate() error {
	if p.SourceID <= 0 {
		return Errorf(EINVALID, "program source ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "program URL required")
	}
	return nil
}

// ProgramService represents a service for managing crawled programs.
type ProgramService interface {
	// CreateProgram creates a new program version.
	CreateProgram(ctx context.Context, program *Program) error

	// FindProgramByID retrieves a program by ID.
	// Returns ENOTFOUND if the program does not exist.
	FindProgramByID(ctx context.Context, id string) (*Program, error)

	// FindPrograms retrieves programs matching the filter, newest first.
	FindPrograms(ctx context.Context, filter ProgramFilter) ([]*Program, error)

	// DeleteProgram permanently removes a program version and its chunks.
	// Returns ENOTFOUND if the program does not exist.
	DeleteProgram(ctx context.Context, id string) error

	// DeleteProgramsByCode removes all versions of a program code.
	DeleteProgramsByCode(ctx context.Context, code string) error
}

// ProgramFilter represents a filter for FindPrograms.
type ProgramFilter struct {
	ID       *string `json:"id"`
	Code     *string `json:"code"`
	SourceID *int    `json:"sourceId"`

	// NewestOnly restricts results to the newest version per program code.
	NewestOnly bool `json:"newestOnly"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
