package pipeline

import (
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"testing"
)

func TestQAPipelineAnswersWithSingleTemplate(t *testing.T) {
	catalog := &fakeCatalog{templates: []*schema.PromptTemplate{
		{
			ID:        "ask-1",
			Category:  "datasheet",
			Kind:      schema.PromptSingle,
			Position:  1,
			Text:      "POWER Answer {question} using:\n{context}",
			Variables: []string{"question", "context"},
		},
	}}
	llm := &fakeLLM{answers: map[string]string{"POWER": "The rated voltage is 230 V."}}
	store := &fakeStore{fragments: []*schema.Fragment{{ID: "f1", Text: "rated 230 V"}}}
	qa := NewQAPipeline(NewRetrievalPipeline(&fakeEmbedder{}, store, testLogger()), catalog, llm, 5, testLogger())

	result, err := qa.Run(context.Background(), "datasheet", "what is the voltage?", "doc-1", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Text != "The rated voltage is 230 V." {
		t.Errorf("Unexpected answer: %q", result.Text)
	}
	if store.lastTopK != 5 {
		t.Errorf("Expected topK 5, got %d", store.lastTopK)
	}
}

func TestQAPipelineRequiresSingleTemplate(t *testing.T) {
	catalog := &fakeCatalog{templates: []*schema.PromptTemplate{
		parallelTemplate("p1", "POWER", 1, "voltage"),
	}}
	store := &fakeStore{}
	qa := NewQAPipeline(NewRetrievalPipeline(&fakeEmbedder{}, store, testLogger()), catalog, &fakeLLM{}, 5, testLogger())

	if _, err := qa.Run(context.Background(), "datasheet", "voltage?", "", nil); err == nil {
		t.Fatal("Expected an error for a category without a single template")
	}
}
