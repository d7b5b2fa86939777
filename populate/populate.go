// Package populate builds the search index: it renders stored courses and
// programs to text, splits the text into chunks, embeds the chunks, and
// stores them alongside the source rows.
package populate

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/henfal/mdubot"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many owners are embedded at once.
const DefaultConcurrency = 4

// Populator embeds syllabus content into the chunk store.
type Populator struct {
	Courses  mdubot.CourseService
	Programs mdubot.ProgramService
	Chunks   mdubot.ChunkService
	Embedder mdubot.Embedder

	// Concurrency bounds parallel embedding; ChunkSize and ChunkOverlap
	// control text splitting. Zero values use the defaults.
	Concurrency  int
	ChunkSize    int
	ChunkOverlap int
}

// Result holds the outcome of a populate operation.
type Result struct {
	Owners int
	Chunks int
	Failed int
}

// ProgressFunc is called after each owner is processed.
type ProgressFunc func(completed, total int)

// owner is one course or program to index.
type owner struct {
	id   string
	kind mdubot.ChunkKind
	code string
	name string
	url  string
	text string
}

// PopulateAll indexes the newest version of every course and program.
// Re-running replaces each owner's chunks, so the operation is idempotent.
func (p *Populator) PopulateAll(ctx context.Context, progress ProgressFunc) (*Result, error) {
	owners, err := p.collectOwners(ctx)
	if err != nil {
		return nil, err
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var completed atomic.Int64
	var chunkCount atomic.Int64
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, o := range owners {
		g.Go(func() error {
			n, err := p.populateOwner(gctx, o)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
			} else {
				chunkCount.Add(int64(n))
			}
			done := completed.Add(1)
			if progress != nil {
				progress(int(done), len(owners))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		Owners: len(owners) - int(failed.Load()),
		Chunks: int(chunkCount.Load()),
		Failed: int(failed.Load()),
	}, nil
}

// collectOwners renders the newest version of each course and program.
func (p *Populator) collectOwners(ctx context.Context) ([]owner, error) {
	courses, err := p.Courses.FindCourses(ctx, mdubot.CourseFilter{NewestOnly: true})
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	programs, err := p.Programs.FindPrograms(ctx, mdubot.ProgramFilter{NewestOnly: true})
	if err != nil {
		return nil, fmt.Errorf("find programs: %w", err)
	}

	owners := make([]owner, 0, len(courses)+len(programs))
	for _, course := range courses {
		owners = append(owners, owner{
			id:   course.ID,
			kind: mdubot.ChunkCourse,
			code: course.Code,
			name: course.Name,
			url:  course.URL,
			text: mdubot.FormatCourse(course),
		})
	}
	for _, program := range programs {
		owners = append(owners, owner{
			id:   program.ID,
			kind: mdubot.ChunkProgram,
			code: program.Code,
			name: program.Name,
			url:  program.URL,
			text: mdubot.FormatProgram(program),
		})
	}
	return owners, nil
}

// populateOwner chunks, embeds, and stores one owner's text, replacing any
// chunks from a previous run. Returns the number of chunks written.
func (p *Populator) populateOwner(ctx context.Context, o owner) (int, error) {
	size, overlap := p.ChunkSize, p.ChunkOverlap
	if size <= 0 {
		size = mdubot.DefaultChunkSize
	}
	if overlap <= 0 {
		overlap = mdubot.DefaultChunkOverlap
	}
	parts := mdubot.SplitChunks(o.text, size, overlap)
	if len(parts) == 0 {
		return 0, nil
	}

	embeddings, err := p.Embedder.EmbedDocuments(ctx, parts)
	if err != nil {
		return 0, fmt.Errorf("embed %s %s: %w", o.kind, o.code, err)
	}

	chunks := make([]*mdubot.Chunk, len(parts))
	for i, part := range parts {
		chunks[i] = &mdubot.Chunk{
			OwnerID:   o.id,
			Kind:      o.kind,
			Code:      o.code,
			Name:      o.name,
			Content:   part,
			Embedding: embeddings[i],
			SourceURL: o.url,
			Position:  i,
		}
	}

	if err := p.Chunks.DeleteChunksByOwner(ctx, o.id); err != nil {
		return 0, fmt.Errorf("clear chunks for %s: %w", o.id, err)
	}
	if err := p.Chunks.CreateChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("store chunks for %s: %w", o.id, err)
	}

	return len(chunks), nil
}
