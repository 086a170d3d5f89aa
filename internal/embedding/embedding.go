package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"docqa/internal/config"
	"docqa/internal/models"
)

// EmbeddingError reports a failed or malformed embedding-service response.
// It covers both index-time and query-time embedding.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding service failure: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// Embedder converts text into a fixed-dimension vector. The same embedder
// must be used for indexing and for query embedding.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// NewEmbedder builds a langchaingo embedder over an OpenAI-compatible
// endpoint (OpenRouter, Ollama's compat API, etc).
func NewEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}

// EmbedChunks embeds every chunk's content. Any failure aborts the batch so
// an index is never built from a partial set of vectors.
func EmbedChunks(ctx context.Context, embedder Embedder, chunks []models.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))
	for _, chunk := range chunks {
		vec, err := embedder.EmbedQuery(ctx, chunk.Content)
		if err != nil {
			return nil, &EmbeddingError{Err: err}
		}
		if len(vec) == 0 {
			return nil, &EmbeddingError{Err: fmt.Errorf("empty vector for chunk %d on page %d", chunk.ChunkID, chunk.PageNumber)}
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

// EmbedQuery embeds a single query string, mapping failure into the
// pipeline's embedding error kind.
func EmbedQuery(ctx context.Context, embedder Embedder, query string) ([]float32, error) {
	vec, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, &EmbeddingError{Err: err}
	}
	return vec, nil
}
