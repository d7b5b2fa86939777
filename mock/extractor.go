package mock

import "github.com/henfal/mdubot"

var _ mdubot.CourseExtractor = (*CourseExtractor)(nil)

// CourseExtractor is a mock implementation of mdubot.CourseExtractor.
type CourseExtractor struct {
	ExtractCourseFn func(html string, sourceID int) (*mdubot.Course, error)
}

func (e *CourseExtractor) ExtractCourse(html string, sourceID int) (*mdubot.Course, error) {
	return e.ExtractCourseFn(html, sourceID)
}

var _ mdubot.ProgramExtractor = (*ProgramExtractor)(nil)

// ProgramExtractor is a mock implementation of mdubot.ProgramExtractor.
type ProgramExtractor struct {
	ExtractProgramFn func(html string, sourceID int) (*mdubot.Program, error)
}

func (e *ProgramExtractor) ExtractProgram(html string, sourceID int) (*mdubot.Program, error) {
	return e.ExtractProgramFn(html, sourceID)
}
