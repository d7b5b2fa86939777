// Package ollama implements embedding and question answering against a
// local Ollama server.
package ollama

import (
	"context"

	"github.com/henfal/mdubot"
	"github.com/tmc/langchaingo/llms/ollama"
	"golang.org/x/time/rate"
)

// Defaults for talking to a local Ollama instance.
const (
	DefaultServerURL  = "http://localhost:11434"
	DefaultEmbedModel = "mxbai-embed-large"

	// DefaultEmbedRPS caps embedding calls so a populate run doesn't
	// saturate the Ollama server while it is also serving chat requests.
	DefaultEmbedRPS = 10
)

// embeddingClient is the part of the langchaingo Ollama client the
// embedder uses.
type embeddingClient interface {
	CreateEmbedding(ctx context.Context, inputTexts []string) ([][]float32, error)
}

// Ensure Embedder implements mdubot.Embedder at compile time.
var _ mdubot.Embedder = (*Embedder)(nil)

// Embedder produces vector embeddings via an Ollama embedding model.
type Embedder struct {
	client  embeddingClient
	limiter *rate.Limiter
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*embedderConfig)

type embedderConfig struct {
	model     string
	serverURL string
	rps       float64
}

// WithEmbedModel sets the embedding model. Defaults to mxbai-embed-large.
func WithEmbedModel(model string) EmbedderOption {
	return func(c *embedderConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithEmbedServerURL sets the Ollama server URL.
func WithEmbedServerURL(url string) EmbedderOption {
	return func(c *embedderConfig) {
		if url != "" {
			c.serverURL = url
		}
	}
}

// WithEmbedRPS sets the embedding call rate limit.
func WithEmbedRPS(rps float64) EmbedderOption {
	return func(c *embedderConfig) {
		if rps > 0 {
			c.rps = rps
		}
	}
}

// NewEmbedder creates an Embedder backed by an Ollama server.
func NewEmbedder(opts ...EmbedderOption) (*Embedder, error) {
	config := &embedderConfig{
		model:     DefaultEmbedModel,
		serverURL: DefaultServerURL,
		rps:       DefaultEmbedRPS,
	}
	for _, opt := range opts {
		opt(config)
	}

	llm, err := ollama.New(
		ollama.WithModel(config.model),
		ollama.WithServerURL(config.serverURL),
	)
	if err != nil {
		return nil, mdubot.Errorf(mdubot.EINTERNAL, "initialize ollama embedder: %v", err)
	}

	return &Embedder{
		client:  llm,
		limiter: rate.NewLimiter(rate.Limit(config.rps), 1),
	}, nil
}

// EmbedDocuments embeds a batch of texts for indexing.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	embeddings, err := e.client.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, mdubot.Errorf(mdubot.EUNAVAILABLE, "ollama embedding failed: %v", err)
	}
	if len(embeddings) != len(texts) {
		return nil, mdubot.Errorf(mdubot.EINTERNAL, "ollama returned %d embeddings for %d texts", len(embeddings), len(texts))
	}

	return embeddings, nil
}

// EmbedQuery embeds a single query string for retrieval.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}
