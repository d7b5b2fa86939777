package populate_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/henfal/mdubot"
	"github.com/henfal/mdubot/mock"
	"github.com/henfal/mdubot/populate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chunkRecorder struct {
	mu      sync.Mutex
	deleted []string
	created []*mdubot.Chunk
}

func (r *chunkRecorder) service() *mock.ChunkService {
	return &mock.ChunkService{
		CreateChunksFn: func(ctx context.Context, chunks []*mdubot.Chunk) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.created = append(r.created, chunks...)
			return nil
		},
		DeleteChunksByOwnerFn: func(ctx context.Context, ownerID string) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.deleted = append(r.deleted, ownerID)
			return nil
		},
	}
}

func unitEmbedder() *mock.Embedder {
	return &mock.Embedder{
		EmbedDocumentsFn: func(ctx context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i := range texts {
				out[i] = []float32{1, 0}
			}
			return out, nil
		},
	}
}

func fixedCourses(courses ...*mdubot.Course) *mock.CourseService {
	return &mock.CourseService{
		FindCoursesFn: func(ctx context.Context, filter mdubot.CourseFilter) ([]*mdubot.Course, error) {
			return courses, nil
		},
	}
}

func fixedPrograms(programs ...*mdubot.Program) *mock.ProgramService {
	return &mock.ProgramService{
		FindProgramsFn: func(ctx context.Context, filter mdubot.ProgramFilter) ([]*mdubot.Program, error) {
			return programs, nil
		},
	}
}

func TestPopulator_PopulateAll(t *testing.T) {
	t.Parallel()

	t.Run("indexes newest courses and programs", func(t *testing.T) {
		t.Parallel()

		course := &mdubot.Course{
			ID: "c1", Code: "dva117", Name: "Programmering", Active: true,
			ValidFrom: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
			URL:       "https://www.mdu.se/utbildning/kursplan?id=25000",
			Sections:  map[string]string{"innehåll": "Grundläggande programmering."},
		}
		program := &mdubot.Program{
			ID: "p1", Code: "gkv01", Name: "Robotik", Active: true,
			ValidFrom: time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC),
			URL:       "https://www.mdu.se/utbildning/utbildningsplan?id=500",
		}

		var newestOnly bool
		courses := &mock.CourseService{
			FindCoursesFn: func(ctx context.Context, filter mdubot.CourseFilter) ([]*mdubot.Course, error) {
				newestOnly = filter.NewestOnly
				return []*mdubot.Course{course}, nil
			},
		}

		recorder := &chunkRecorder{}
		p := &populate.Populator{
			Courses:  courses,
			Programs: fixedPrograms(program),
			Chunks:   recorder.service(),
			Embedder: unitEmbedder(),
		}

		result, err := p.PopulateAll(context.Background(), nil)
		require.NoError(t, err)

		assert.True(t, newestOnly, "only the newest version per code is indexed")
		assert.Equal(t, 2, result.Owners)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, len(recorder.created), result.Chunks)

		assert.ElementsMatch(t, []string{"c1", "p1"}, recorder.deleted, "old chunks are replaced")

		byOwner := map[string][]*mdubot.Chunk{}
		for _, chunk := range recorder.created {
			byOwner[chunk.OwnerID] = append(byOwner[chunk.OwnerID], chunk)
		}
		require.NotEmpty(t, byOwner["c1"])
		first := byOwner["c1"][0]
		assert.Equal(t, mdubot.ChunkCourse, first.Kind)
		assert.Equal(t, "dva117", first.Code)
		assert.Equal(t, "Programmering", first.Name)
		assert.Equal(t, course.URL, first.SourceURL)
		assert.Equal(t, 0, first.Position)
		assert.NotEmpty(t, first.Embedding)
		assert.Contains(t, first.Content, "Grundläggande programmering.")

		require.NotEmpty(t, byOwner["p1"])
		assert.Equal(t, mdubot.ChunkProgram, byOwner["p1"][0].Kind)
	})

	t.Run("splits long content into positioned chunks", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("Detta är en mening om kursens innehåll. ", 100)
		course := &mdubot.Course{
			ID: "c1", Code: "dva117", Name: "Programmering",
			URL:      "https://www.mdu.se/utbildning/kursplan?id=25000",
			Sections: map[string]string{"innehåll": long},
		}

		recorder := &chunkRecorder{}
		p := &populate.Populator{
			Courses:  fixedCourses(course),
			Programs: fixedPrograms(),
			Chunks:   recorder.service(),
			Embedder: unitEmbedder(),
			ChunkSize: 500, ChunkOverlap: 100,
		}

		result, err := p.PopulateAll(context.Background(), nil)
		require.NoError(t, err)
		assert.Greater(t, result.Chunks, 1)

		positions := map[int]bool{}
		for _, chunk := range recorder.created {
			positions[chunk.Position] = true
			assert.LessOrEqual(t, len(chunk.Content), 500+100)
		}
		for i := 0; i < result.Chunks; i++ {
			assert.True(t, positions[i], "position %d missing", i)
		}
	})

	t.Run("counts embedding failures without aborting the run", func(t *testing.T) {
		t.Parallel()

		courses := fixedCourses(
			&mdubot.Course{ID: "c1", Code: "dva117", Name: "A", Sections: map[string]string{"innehåll": "text"}},
			&mdubot.Course{ID: "c2", Code: "mat101", Name: "B", Sections: map[string]string{"innehåll": "text"}},
		)

		recorder := &chunkRecorder{}
		var mu sync.Mutex
		calls := 0
		embedder := &mock.Embedder{
			EmbedDocumentsFn: func(ctx context.Context, texts []string) ([][]float32, error) {
				mu.Lock()
				defer mu.Unlock()
				calls++
				if calls == 1 {
					return nil, mdubot.Errorf(mdubot.EUNAVAILABLE, "ollama down")
				}
				out := make([][]float32, len(texts))
				for i := range texts {
					out[i] = []float32{1}
				}
				return out, nil
			},
		}

		p := &populate.Populator{
			Courses:     courses,
			Programs:    fixedPrograms(),
			Chunks:      recorder.service(),
			Embedder:    embedder,
			Concurrency: 1,
		}

		result, err := p.PopulateAll(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Owners)
	})

	t.Run("reports progress per owner", func(t *testing.T) {
		t.Parallel()

		courses := fixedCourses(
			&mdubot.Course{ID: "c1", Code: "dva117", Name: "A", Sections: map[string]string{"innehåll": "x"}},
			&mdubot.Course{ID: "c2", Code: "mat101", Name: "B", Sections: map[string]string{"innehåll": "y"}},
		)

		recorder := &chunkRecorder{}
		var mu sync.Mutex
		var totals []int
		p := &populate.Populator{
			Courses:  courses,
			Programs: fixedPrograms(),
			Chunks:   recorder.service(),
			Embedder: unitEmbedder(),
		}

		_, err := p.PopulateAll(context.Background(), func(completed, total int) {
			mu.Lock()
			defer mu.Unlock()
			totals = append(totals, total)
		})
		require.NoError(t, err)
		assert.Len(t, totals, 2)
		assert.Equal(t, []int{2, 2}, totals)
	})
}
