package pipeline

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"VaultMind/backend/go/pkg/logger"
)

// embedBatchSize bounds the number of chunk texts sent to the embedding
// model in one call.
const embedBatchSize = 32

// IndexingPipeline splits a document into chunks, embeds them in parallel
// batches and stores the resulting fragments in the vault.
type IndexingPipeline struct {
	splitter interfaces.Splitter
	embedder interfaces.EmbeddingModel
	store    interfaces.KnowledgeStore
	log      *logger.Logger
}

// NewIndexingPipeline creates a new IndexingPipeline.
func NewIndexingPipeline(splitter interfaces.Splitter, embedder interfaces.EmbeddingModel, store interfaces.KnowledgeStore, log *logger.Logger) *IndexingPipeline {
	return &IndexingPipeline{
		splitter: splitter,
		embedder: embedder,
		store:    store,
		log:      log,
	}
}

// Run indexes one document. The equipment name and manufacturer are attached
// to every fragment so retrieval can filter on them later.
func (p *IndexingPipeline) Run(ctx context.Context, doc *schema.Document, equipmentName, manufacturer string) (int, error) {
	p.log.Info(fmt.Sprintf("Starting indexing for document: %s", doc.ID))

	chunks, err := p.splitter.Split(ctx, doc.Text)
	if err != nil {
		return 0, fmt.Errorf("failed to split document %s: %w", doc.ID, err)
	}
	if len(chunks) == 0 {
		p.log.Warn(fmt.Sprintf("Document %s produced no chunks, nothing to index", doc.ID))
		return 0, nil
	}

	fragments := make([]*schema.Fragment, len(chunks))
	for i, chunk := range chunks {
		fragments[i] = &schema.Fragment{
			ID:            uuid.New().String(),
			DocumentID:    doc.ID,
			Text:          chunk.Text,
			Start:         chunk.Start,
			End:           chunk.End,
			EquipmentName: equipmentName,
			Manufacturer:  manufacturer,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(fragments); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(fragments) {
			end = len(fragments)
		}
		batch := fragments[start:end]

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, f := range batch {
				texts[i] = f.Text
			}
			embeddings, err := p.embedder.EmbedBatch(gctx, texts)
			if err != nil {
				return fmt.Errorf("failed to embed chunk batch: %w", err)
			}
			if len(embeddings) != len(batch) {
				return fmt.Errorf("embedding model returned %d vectors for %d chunks", len(embeddings), len(batch))
			}
			for i := range batch {
				batch[i].Embedding = embeddings[i]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := p.store.Add(ctx, fragments); err != nil {
		return 0, fmt.Errorf("failed to store fragments for document %s: %w", doc.ID, err)
	}

	p.log.Info(fmt.Sprintf("Indexed document %s into %d fragments", doc.ID, len(fragments)))
	return len(fragments), nil
}
