package llm

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"fmt"
	"time"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// OpenAI is a language model client backed by the OpenAI chat completion API.
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAI creates a new OpenAI client. An empty baseURL uses the public
// API endpoint.
func NewOpenAI(apiKey, model, baseURL string, timeout time.Duration) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAI{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate sends the prompt to the chat completion endpoint and returns the
// generated text together with token usage and wall-clock duration.
func (o *OpenAI) Generate(ctx context.Context, req *schema.GenerateRequest) (*schema.GenerateResult, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	openaiReq := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: &req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.ResponseFormat == schema.ResponseFormatJSON {
		openaiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	return &schema.GenerateResult{
		Text:      resp.Choices[0].Message.Content,
		TokensIn:  resp.Usage.PromptTokens,
		TokensOut: resp.Usage.CompletionTokens,
		Duration:  time.Since(start),
	}, nil
}

// compile-time check to ensure OpenAI implements the LLM interface
var _ interfaces.LLM = (*OpenAI)(nil)
