package embedding

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	olla "github.com/ollama/ollama/api"
)

// OllamaModel is an embedding client backed by a local Ollama server.
type OllamaModel struct {
	client *olla.Client
	model  string
}

// NewOllamaModel creates a new OllamaModel client. An empty baseURL defaults
// to "http://localhost:11434".
func NewOllamaModel(model, baseURL string) (*OllamaModel, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	hc := &http.Client{Timeout: 60 * time.Second}
	return &OllamaModel{client: olla.NewClient(parsedURL, hc), model: model}, nil
}

// Embed generates the embedding vector for a single text.
func (m *OllamaModel) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates embedding vectors for a batch of texts in one call.
func (m *OllamaModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := m.client.Embed(ctx, &olla.EmbedRequest{
		Model: m.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed with ollama: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	return resp.Embeddings, nil
}

// compile-time check to ensure OllamaModel implements the EmbeddingModel interface
var _ interfaces.EmbeddingModel = (*OllamaModel)(nil)
