package llm

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	olla "github.com/ollama/ollama/api"
)

// Ollama is a language model client backed by a local Ollama server.
type Ollama struct {
	client  *olla.Client
	model   string
	timeout time.Duration
}

// NewOllama creates a new Ollama client. An empty baseURL defaults to
// "http://localhost:11434".
func NewOllama(model, baseURL string, timeout time.Duration) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	hc := &http.Client{Timeout: timeout}

	return &Ollama{
		client:  olla.NewClient(parsedURL, hc),
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate sends the prompt to the Ollama generate endpoint and returns the
// generated text together with token counts and wall-clock duration.
func (o *Ollama) Generate(ctx context.Context, req *schema.GenerateRequest) (*schema.GenerateResult, error) {
	stream := false
	ollamaReq := &olla.GenerateRequest{
		Model:   o.model,
		Prompt:  req.Prompt,
		Stream:  &stream,
		Options: map[string]interface{}{},
	}
	if req.Temperature > 0 {
		ollamaReq.Options["temperature"] = req.Temperature
	}
	if req.MaxTokens > 0 {
		ollamaReq.Options["num_predict"] = req.MaxTokens
	}
	if req.ResponseFormat == schema.ResponseFormatJSON {
		ollamaReq.Format = json.RawMessage(`"json"`)
	}

	start := time.Now()
	var final olla.GenerateResponse
	err := o.client.Generate(ctx, ollamaReq, func(resp olla.GenerateResponse) error {
		final = resp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate with ollama: %w", err)
	}

	return &schema.GenerateResult{
		Text:      final.Response,
		TokensIn:  final.PromptEvalCount,
		TokensOut: final.EvalCount,
		Duration:  time.Since(start),
	}, nil
}

// compile-time check to ensure Ollama implements the LLM interface
var _ interfaces.LLM = (*Ollama)(nil)
