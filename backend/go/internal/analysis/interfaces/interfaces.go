package interfaces

import (
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
)

// Loader is the interface for loading data from a source (e.g., file, URL)
// and converting it into a list of Document objects.
type Loader interface {
	Load(ctx context.Context, path string) ([]*schema.Document, error)
}

// Splitter is the interface for cutting a document's text into chunks.
type Splitter interface {
	Split(ctx context.Context, text string) ([]schema.Chunk, error)
}

// EmbeddingModel is the interface for a text embedding model.
type EmbeddingModel interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// LLM is the interface for a language model client. Implementations record
// token usage and wall-clock duration on every call.
type LLM interface {
	Generate(ctx context.Context, req *schema.GenerateRequest) (*schema.GenerateResult, error)
}

// KnowledgeStore is the interface for the document vault: embedded chunks go
// in via Add, and Search returns the topK fragments ranked by similarity,
// optionally narrowed by a document scope and an appended filter fragment.
// Filter fragments must number their placeholders from FilterParamOffset,
// after the parameters of the base query.
type KnowledgeStore interface {
	Add(ctx context.Context, fragments []*schema.Fragment) error
	Search(ctx context.Context, embedding []float32, topK int, documentID string, filter schema.FilterFragment) ([]*schema.Fragment, error)
	FilterParamOffset() int
}

// PromptCatalog supplies the registered prompt templates for a category,
// ordered by their catalog position.
type PromptCatalog interface {
	Templates(ctx context.Context, category string, kind schema.PromptKind) ([]*schema.PromptTemplate, error)
}
