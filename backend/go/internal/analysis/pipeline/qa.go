package pipeline

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"fmt"

	"VaultMind/backend/go/pkg/logger"
)

// QAPipeline answers a single free-text question over the vault: it retrieves
// context, renders the category's single prompt template and calls the model
// once.
type QAPipeline struct {
	retrieval *RetrievalPipeline
	catalog   interfaces.PromptCatalog
	llm       interfaces.LLM
	log       *logger.Logger
	topK      int
}

// NewQAPipeline creates a new QAPipeline.
func NewQAPipeline(retrieval *RetrievalPipeline, catalog interfaces.PromptCatalog, llm interfaces.LLM, topK int, log *logger.Logger) *QAPipeline {
	return &QAPipeline{
		retrieval: retrieval,
		catalog:   catalog,
		llm:       llm,
		log:       log,
		topK:      topK,
	}
}

// Run answers the question using the first single template registered for the
// category. The returned result carries the answer text and call telemetry.
func (p *QAPipeline) Run(ctx context.Context, category, question, documentID string, equipmentVariants []string) (*schema.GenerateResult, error) {
	templates, err := p.catalog.Templates(ctx, category, schema.PromptSingle)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no single prompt template registered for category %s", category)
	}
	template := templates[0]

	fragments, err := p.retrieval.Run(ctx, question, documentID, equipmentVariants, p.topK)
	if err != nil {
		return nil, err
	}

	prompt := resolveTemplate(template.Text, map[string]string{
		"question": question,
		"context":  formatFragments(fragments),
	})

	result, err := p.llm.Generate(ctx, &schema.GenerateRequest{
		Prompt:         prompt,
		ResponseFormat: schema.ResponseFormatText,
	})
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	p.log.WithPayload(map[string]interface{}{
		"category":    category,
		"chunks_used": len(fragments),
		"tokens_in":   result.TokensIn,
		"tokens_out":  result.TokensOut,
	}).Info("Answered question")

	return result, nil
}
