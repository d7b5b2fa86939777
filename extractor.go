package mdubot

import "strings"

// templateMarker appears in pages where the server rendered the raw template
// instead of a syllabus, i.e. the ID does not exist.
const templateMarker = "$details.name"

// IsPlaceholder reports whether the HTML is an unrendered template page
// rather than an actual syllabus.
func IsPlaceholder(html string) bool {
	return strings.Contains(html, templateMarker)
}

// CourseExtractor extracts structured course data from a kursplan page.
type CourseExtractor interface {
	// ExtractCourse parses the HTML of a course syllabus page.
	// Returns EINVALID if the page is a template placeholder.
	ExtractCourse(html string, sourceID int) (*Course, error)
}

// ProgramExtractor extracts structured program data from an utbildningsplan page.
type ProgramExtractor interface {
	// ExtractProgram parses the HTML of a program syllabus page.
	// Returns EINVALID if the page is a template placeholder.
	ExtractProgram(html string, sourceID int) (*Program, error)
}
