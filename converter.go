package mdubot

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be a content fragment (e.g., a syllabus text section).
	Convert(html string) (string, error)
}
