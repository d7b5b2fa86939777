package mdubot

import "context"

// ChunkKind identifies the type of syllabus a chunk was derived from.
type ChunkKind string

// Chunk kinds.
const (
	ChunkCourse  ChunkKind = "course"
	ChunkProgram ChunkKind = "program"
)

// Chunk represents a section of syllabus text optimized for embedding and
// retrieval. Code and Name are denormalized from the owning course or program
// so that retrieval can filter by code without joins.
type Chunk struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"` // Course.ID or Program.ID
	Kind      ChunkKind `json:"kind"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding,omitempty"`
	SourceURL string    `json:"sourceUrl"`
	Position  int       `json:"position"` // order within the owner
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.OwnerID == "" {
		return Errorf(EINVALID, "chunk owner ID required")
	}
	if c.Kind != ChunkCourse && c.Kind != ChunkProgram {
		return Errorf(EINVALID, "chunk kind must be course or program")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// ChunkService represents a service for managing chunks.
type ChunkService interface {
	// CreateChunks creates multiple chunks in a batch.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// FindChunks retrieves chunks matching the filter.
	FindChunks(ctx context.Context, filter ChunkFilter) ([]*Chunk, error)

	// DeleteChunksByOwner removes all chunks for a course or program.
	DeleteChunksByOwner(ctx context.Context, ownerID string) error
}

// ChunkFilter represents a filter for FindChunks.
type ChunkFilter struct {
	ID      *string    `json:"id"`
	OwnerID *string    `json:"ownerId"`
	Kind    *ChunkKind `json:"kind"`
	Code    *string    `json:"code"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Embedder produces vector embeddings for text.
type Embedder interface {
	// EmbedDocuments embeds a batch of texts for indexing.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single query string for retrieval.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// SearchService provides semantic search over indexed chunks.
type SearchService interface {
	// Search returns chunks ordered by relevance to the query.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// SearchOptions configures search behavior. At most one of CourseCode and
// ProgramCode should be set; CourseCode wins if both are.
type SearchOptions struct {
	CourseCode  string  `json:"courseCode,omitempty"`
	ProgramCode string  `json:"programCode,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	MinScore    float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}
