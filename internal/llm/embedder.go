package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/akashicode/pdfclean/internal/config"
)

// ErrNilEmbedConfig is returned when nil embed config is provided.
var ErrNilEmbedConfig = errors.New("embedder config is nil")

// ErrEmptyEmbedding is returned when the provider answers without a vector.
var ErrEmptyEmbedding = errors.New("embedder returned no embedding")

// Embedder generates vector embeddings via an OpenAI-compatible API.
type Embedder struct {
	client     *openai.Client
	model      string
	dimensions int
}

// NewEmbedder creates a new Embedder from a ProviderConfig.
func NewEmbedder(cfg *config.ProviderConfig) (*Embedder, error) {
	if cfg == nil {
		return nil, ErrNilEmbedConfig
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("embedder base_url is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("embedder api_key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Embedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// EmbedBatch generates embeddings for a batch of strings, in input order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	req := openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("embed request: %w", err)
	}

	result := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index >= 0 && d.Index < len(result) {
			result[d.Index] = d.Embedding
		}
	}
	return result, nil
}

// Embed generates an embedding for a single string. Its signature matches
// chromem.EmbeddingFunc.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	results, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 || len(results[0]) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return results[0], nil
}

// Model returns the configured embedding model name.
func (e *Embedder) Model() string {
	return e.model
}
