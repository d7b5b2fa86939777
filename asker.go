package mdubot

import "context"

// Asker answers natural language questions about MDU courses and programs.
type Asker interface {
	// Ask answers a question using retrieved syllabus context.
	// Course and program codes mentioned in the question narrow retrieval.
	Ask(ctx context.Context, question string) (string, error)
}
