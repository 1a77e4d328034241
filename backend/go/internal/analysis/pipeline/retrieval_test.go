package pipeline

import (
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"strings"
	"testing"
)

func TestRetrievalPassesScopeAndLimit(t *testing.T) {
	store := &fakeStore{fragments: []*schema.Fragment{
		{ID: "f1", Text: "pump curve data", Score: 0.91},
		{ID: "f2", Text: "seal ratings", Score: 0.84},
	}}
	retrieval := NewRetrievalPipeline(&fakeEmbedder{}, store, testLogger())

	fragments, err := retrieval.Run(context.Background(), "max flow rate?", "doc-42", nil, 7)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(fragments) != 2 {
		t.Fatalf("Expected 2 fragments, got %d", len(fragments))
	}
	if store.lastTopK != 7 {
		t.Errorf("Expected topK 7, got %d", store.lastTopK)
	}
	if store.lastDocID != "doc-42" {
		t.Errorf("Expected document scope doc-42, got %q", store.lastDocID)
	}
	if store.lastFilter.Condition != "" {
		t.Errorf("Expected identity filter without variants, got %q", store.lastFilter.Condition)
	}
}

func TestRetrievalBuildsFilterAtStoreOffset(t *testing.T) {
	store := &fakeStore{paramOffset: 4}
	retrieval := NewRetrievalPipeline(&fakeEmbedder{}, store, testLogger())

	if _, err := retrieval.Run(context.Background(), "voltage?", "", []string{"razon+"}, 5); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The filter's first placeholder must start where the store's base query
	// parameters end.
	if !strings.Contains(store.lastFilter.Condition, "$4") {
		t.Errorf("Filter should number placeholders from the store offset, got %q", store.lastFilter.Condition)
	}
	if strings.Contains(store.lastFilter.Condition, "$1") || strings.Contains(store.lastFilter.Condition, "$2") || strings.Contains(store.lastFilter.Condition, "$3") {
		t.Errorf("Filter must not reuse the base query's placeholders, got %q", store.lastFilter.Condition)
	}
	if len(store.lastFilter.Params) != 2 {
		t.Errorf("Expected 2 params for one variant, got %v", store.lastFilter.Params)
	}
}
