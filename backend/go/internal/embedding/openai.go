package embedding

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// OpenAIModel is an embedding client backed by the OpenAI embeddings API.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIModel creates a new OpenAIModel client. An empty baseURL uses the
// public API endpoint.
func NewOpenAIModel(apiKey, model, baseURL string) (*OpenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIModel{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Embed generates the embedding vector for a single text.
func (m *OpenAIModel) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates embedding vectors for a batch of texts in one call.
func (m *OpenAIModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := m.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(m.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		embeddings[i] = item.Embedding
	}
	return embeddings, nil
}

// compile-time check to ensure OpenAIModel implements the EmbeddingModel interface
var _ interfaces.EmbeddingModel = (*OpenAIModel)(nil)
