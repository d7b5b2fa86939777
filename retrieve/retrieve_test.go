package retrieve_test

import (
	"context"
	"testing"

	"github.com/henfal/mdubot"
	"github.com/henfal/mdubot/mock"
	"github.com/henfal/mdubot/retrieve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticEmbedder(vec []float32) *mock.Embedder {
	return &mock.Embedder{
		EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
			return vec, nil
		},
	}
}

func TestRetriever_Search(t *testing.T) {
	t.Parallel()

	t.Run("ranks chunks by cosine similarity", func(t *testing.T) {
		t.Parallel()

		chunks := &mock.ChunkService{
			FindChunksFn: func(ctx context.Context, filter mdubot.ChunkFilter) ([]*mdubot.Chunk, error) {
				return []*mdubot.Chunk{
					{ID: "orthogonal", Embedding: []float32{0, 1, 0}},
					{ID: "aligned", Embedding: []float32{2, 0, 0}},
					{ID: "diagonal", Embedding: []float32{1, 1, 0}},
				}, nil
			},
		}

		r := retrieve.NewRetriever(staticEmbedder([]float32{1, 0, 0}), chunks)
		results, err := r.Search(context.Background(), "question", mdubot.SearchOptions{})
		require.NoError(t, err)

		require.Len(t, results, 3)
		assert.Equal(t, "aligned", results[0].Chunk.ID)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
		assert.Equal(t, "diagonal", results[1].Chunk.ID)
		assert.Equal(t, "orthogonal", results[2].Chunk.ID)
	})

	t.Run("filters candidates by course code", func(t *testing.T) {
		t.Parallel()

		var gotFilter mdubot.ChunkFilter
		chunks := &mock.ChunkService{
			FindChunksFn: func(ctx context.Context, filter mdubot.ChunkFilter) ([]*mdubot.Chunk, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		r := retrieve.NewRetriever(staticEmbedder([]float32{1}), chunks)
		_, err := r.Search(context.Background(), "q", mdubot.SearchOptions{CourseCode: "dva117"})
		require.NoError(t, err)

		require.NotNil(t, gotFilter.Code)
		assert.Equal(t, "dva117", *gotFilter.Code)
		require.NotNil(t, gotFilter.Kind)
		assert.Equal(t, mdubot.ChunkCourse, *gotFilter.Kind)
	})

	t.Run("course code takes precedence over program code", func(t *testing.T) {
		t.Parallel()

		var gotFilter mdubot.ChunkFilter
		chunks := &mock.ChunkService{
			FindChunksFn: func(ctx context.Context, filter mdubot.ChunkFilter) ([]*mdubot.Chunk, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		r := retrieve.NewRetriever(staticEmbedder([]float32{1}), chunks)
		_, err := r.Search(context.Background(), "q", mdubot.SearchOptions{CourseCode: "dva117", ProgramCode: "gkv01"})
		require.NoError(t, err)

		require.NotNil(t, gotFilter.Kind)
		assert.Equal(t, mdubot.ChunkCourse, *gotFilter.Kind)
	})

	t.Run("applies the default limit of five", func(t *testing.T) {
		t.Parallel()

		chunks := &mock.ChunkService{
			FindChunksFn: func(ctx context.Context, filter mdubot.ChunkFilter) ([]*mdubot.Chunk, error) {
				var all []*mdubot.Chunk
				for i := 0; i < 10; i++ {
					all = append(all, &mdubot.Chunk{ID: string(rune('a' + i)), Embedding: []float32{1, float32(i)}})
				}
				return all, nil
			},
		}

		r := retrieve.NewRetriever(staticEmbedder([]float32{1, 0}), chunks)
		results, err := r.Search(context.Background(), "q", mdubot.SearchOptions{})
		require.NoError(t, err)
		assert.Len(t, results, 5)
	})

	t.Run("skips chunks without embeddings and below MinScore", func(t *testing.T) {
		t.Parallel()

		chunks := &mock.ChunkService{
			FindChunksFn: func(ctx context.Context, filter mdubot.ChunkFilter) ([]*mdubot.Chunk, error) {
				return []*mdubot.Chunk{
					{ID: "no-embedding"},
					{ID: "weak", Embedding: []float32{0, 1}},
					{ID: "strong", Embedding: []float32{1, 0}},
				}, nil
			},
		}

		r := retrieve.NewRetriever(staticEmbedder([]float32{1, 0}), chunks)
		results, err := r.Search(context.Background(), "q", mdubot.SearchOptions{MinScore: 0.5})
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, "strong", results[0].Chunk.ID)
	})

	t.Run("propagates embedder errors", func(t *testing.T) {
		t.Parallel()

		embedder := &mock.Embedder{
			EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
				return nil, mdubot.Errorf(mdubot.EUNAVAILABLE, "ollama is not running")
			},
		}
		chunks := &mock.ChunkService{}

		r := retrieve.NewRetriever(embedder, chunks)
		_, err := r.Search(context.Background(), "q", mdubot.SearchOptions{})
		require.Error(t, err)
		assert.Equal(t, mdubot.EUNAVAILABLE, mdubot.ErrorCode(err))
	})
}
