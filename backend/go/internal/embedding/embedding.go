package embedding

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/config"
	"fmt"
)

// NewModel is a factory that creates an embedding model client for the
// configured provider.
func NewModel(cfg config.EmbeddingConfig) (interfaces.EmbeddingModel, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	case "ollama":
		return NewOllamaModel(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
