// Package retrieve implements semantic search over embedded syllabus
// chunks. Chunks live in sqlite with their embeddings inline; the corpus is
// small enough (a few thousand chunks) that brute-force cosine similarity
// in memory beats maintaining a separate vector index.
package retrieve

import (
	"context"
	"math"
	"sort"

	"github.com/henfal/mdubot"
)

// DefaultLimit is the number of results returned when no code narrows the
// search and no explicit limit is set.
const DefaultLimit = 5

// Ensure Retriever implements mdubot.SearchService at compile time.
var _ mdubot.SearchService = (*Retriever)(nil)

// Retriever ranks stored chunks by similarity to a query embedding.
type Retriever struct {
	embedder mdubot.Embedder
	chunks   mdubot.ChunkService
}

// NewRetriever creates a new Retriever.
func NewRetriever(embedder mdubot.Embedder, chunks mdubot.ChunkService) *Retriever {
	return &Retriever{embedder: embedder, chunks: chunks}
}

// Search embeds the query and returns the most similar chunks. A course or
// program code in the options restricts candidates to that code's chunks.
func (r *Retriever) Search(ctx context.Context, query string, opts mdubot.SearchOptions) ([]mdubot.SearchResult, error) {
	queryVec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	filter := mdubot.ChunkFilter{}
	switch {
	case opts.CourseCode != "":
		code, kind := opts.CourseCode, mdubot.ChunkCourse
		filter.Code, filter.Kind = &code, &kind
	case opts.ProgramCode != "":
		code, kind := opts.ProgramCode, mdubot.ChunkProgram
		filter.Code, filter.Kind = &code, &kind
	}

	chunks, err := r.chunks.FindChunks(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]mdubot.SearchResult, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		score := cosineSimilarity(queryVec, chunk.Embedding)
		if score < opts.MinScore {
			continue
		}
		results = append(results, mdubot.SearchResult{Chunk: chunk, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// cosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched dimensions or zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
