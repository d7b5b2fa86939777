package mock

import (
	"context"

	"github.com/henfal/mdubot"
)

var _ mdubot.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of mdubot.ChunkService.
type ChunkService struct {
	CreateChunksFn        func(ctx context.Context, chunks []*mdubot.Chunk) error
	FindChunksFn          func(ctx context.Context, filter mdubot.ChunkFilter) ([]*mdubot.Chunk, error)
	DeleteChunksByOwnerFn func(ctx context.Context, ownerID string) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*mdubot.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter mdubot.ChunkFilter) ([]*mdubot.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) DeleteChunksByOwner(ctx context.Context, ownerID string) error {
	return s.DeleteChunksByOwnerFn(ctx, ownerID)
}
