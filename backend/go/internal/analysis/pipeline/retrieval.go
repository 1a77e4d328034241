// Package pipeline wires the analysis components into runnable flows:
// indexing documents into the vault, retrieving context for a question, and
// dispatching single or parallel prompt runs against the language model.
package pipeline

import (
	"VaultMind/backend/go/internal/analysis/filter"
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"fmt"

	"VaultMind/backend/go/pkg/logger"
)

// RetrievalPipeline retrieves the vault fragments most relevant to a query,
// optionally scoped to one document and narrowed by equipment-name variants.
type RetrievalPipeline struct {
	embedder interfaces.EmbeddingModel
	store    interfaces.KnowledgeStore
	log      *logger.Logger
}

// NewRetrievalPipeline creates a new RetrievalPipeline.
func NewRetrievalPipeline(embedder interfaces.EmbeddingModel, store interfaces.KnowledgeStore, log *logger.Logger) *RetrievalPipeline {
	return &RetrievalPipeline{
		embedder: embedder,
		store:    store,
		log:      log,
	}
}

// Run embeds the query and searches the vault. An empty documentID searches
// across all documents; an empty variant list applies no equipment filter.
func (p *RetrievalPipeline) Run(ctx context.Context, query, documentID string, equipmentVariants []string, topK int) ([]*schema.Fragment, error) {
	p.log.Debug(fmt.Sprintf("Starting retrieval for query: '%s'", query))

	queryEmbedding, err := p.embedder.Embed(ctx, query)
	if err != nil {
		p.log.WithError(err).Error("Failed to embed query")
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	equipmentFilter := filter.BuildEquipmentFilter(equipmentVariants, p.store.FilterParamOffset())

	fragments, err := p.store.Search(ctx, queryEmbedding, topK, documentID, equipmentFilter)
	if err != nil {
		p.log.WithError(err).Error("Failed to search the vault")
		return nil, fmt.Errorf("failed to search the vault: %w", err)
	}

	p.log.Debug(fmt.Sprintf("Retrieved %d fragments from the vault", len(fragments)))
	return fragments, nil
}
