package sqlite

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/henfal/mdubot"
)

// Compile-time interface verification.
var _ mdubot.ChunkService = (*ChunkService)(nil)

// ChunkService implements mdubot.ChunkService using SQLite. Embeddings are
// stored as little-endian float32 blobs.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks creates multiple chunks in a batch.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*mdubot.Chunk) error {
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
	}

	for _, chunk := range chunks {
		chunk.ID = uuid.New().String()

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO chunks (id, owner_id, kind, code, name, content, embedding, source_url, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.OwnerID, string(chunk.Kind), strings.ToLower(chunk.Code),
			chunk.Name, chunk.Content, encodeEmbedding(chunk.Embedding),
			chunk.SourceURL, chunk.Position)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindChunks retrieves chunks matching the filter, in owner position order.
func (s *ChunkService) FindChunks(ctx context.Context, filter mdubot.ChunkFilter) ([]*mdubot.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, owner_id, kind, code, name, content, embedding, source_url, position FROM chunks WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.OwnerID != nil {
		query.WriteString(" AND owner_id = ?")
		args = append(args, *filter.OwnerID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.Code != nil {
		query.WriteString(" AND code = ?")
		args = append(args, strings.ToLower(*filter.Code))
	}

	query.WriteString(" ORDER BY owner_id ASC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*mdubot.Chunk
	for rows.Next() {
		var chunk mdubot.Chunk
		var kind string
		var embedding []byte

		if err := rows.Scan(&chunk.ID, &chunk.OwnerID, &kind, &chunk.Code,
			&chunk.Name, &chunk.Content, &embedding, &chunk.SourceURL,
			&chunk.Position); err != nil {
			return nil, err
		}

		chunk.Kind = mdubot.ChunkKind(kind)
		if chunk.Embedding, err = decodeEmbedding(embedding); err != nil {
			return nil, err
		}

		chunks = append(chunks, &chunk)
	}

	return chunks, rows.Err()
}

// DeleteChunksByOwner removes all chunks for a course or program.
func (s *ChunkService) DeleteChunksByOwner(ctx context.Context, ownerID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE owner_id = ?", ownerID)
	return err
}
