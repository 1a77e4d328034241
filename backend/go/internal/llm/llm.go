package llm

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/config"
	"fmt"
	"time"
)

// NewClient is a factory that creates a language model client for the
// configured provider. The timeout bounds every individual model call.
func NewClient(cfg config.LLMConfig, timeout time.Duration) (interfaces.LLM, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, timeout)
	case "ollama":
		return NewOllama(cfg.Ollama.Model, cfg.Ollama.BaseURL, timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
