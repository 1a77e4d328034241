package similarity

import (
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	v, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no fake embedding for %q", text)
	}
	return v, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type fakeLLM struct {
	fail bool
}

func (f *fakeLLM) Generate(ctx context.Context, req *schema.GenerateRequest) (*schema.GenerateResult, error) {
	if f.fail {
		return nil, errors.New("model unavailable")
	}
	switch {
	case strings.Contains(req.Prompt, "plausible answer"):
		return &schema.GenerateResult{Text: "hypothetical answer"}, nil
	case strings.Contains(req.Prompt, "Rephrase"):
		return &schema.GenerateResult{Text: "p one\np two\np three"}, nil
	case strings.Contains(req.Prompt, "scale from 0 to 100"):
		return &schema.GenerateResult{Text: "55"}, nil
	}
	return nil, fmt.Errorf("unexpected prompt: %s", req.Prompt)
}

func newTestHarness(llm *fakeLLM) *Harness {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"doc text":            {1, 0},
		"the query":           {0.5, 0.866},
		"hypothetical answer": {0.95, 0.312},
		"p one":               {0.7, 0.714},
		"p two":               {0.3, 0.954},
		"p three":             {0.2, 0.98},
	}}
	return NewHarness(embedder, llm, nil)
}

func TestHarnessRanksStrategies(t *testing.T) {
	harness := newTestHarness(&fakeLLM{})

	report, err := harness.Evaluate(context.Background(), "doc text", "the query")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if len(report.Scores) != 5 {
		t.Fatalf("Expected all 5 strategies scored, got %d", len(report.Scores))
	}
	for i := 1; i < len(report.Scores); i++ {
		if report.Scores[i].Score > report.Scores[i-1].Score {
			t.Errorf("Scores not sorted descending at position %d", i)
		}
	}

	if report.Recommended != StrategyHyDE {
		t.Errorf("Expected %s recommended, got %s", StrategyHyDE, report.Recommended)
	}
	if !report.RecommendAdoption {
		t.Error("Expected adoption recommendation for a >10%% improvement")
	}

	top := report.Scores[0]
	if top.Verdict != VerdictSignificant {
		t.Errorf("Expected significant verdict for the top strategy, got %s", top.Verdict)
	}
	if top.ImprovementPct <= 10 {
		t.Errorf("Expected >10%% improvement, got %v", top.ImprovementPct)
	}
}

func TestHarnessOmitsFailingStrategies(t *testing.T) {
	harness := newTestHarness(&fakeLLM{fail: true})

	report, err := harness.Evaluate(context.Background(), "doc text", "the query")
	if err != nil {
		t.Fatalf("Evaluate() should survive model failures, got error %v", err)
	}

	if len(report.Scores) != 1 {
		t.Fatalf("Expected only the baseline to remain, got %d scores", len(report.Scores))
	}
	if report.Recommended != StrategyBaseline {
		t.Errorf("Expected baseline recommendation, got %s", report.Recommended)
	}
	if report.RecommendAdoption {
		t.Error("A baseline-only report must not recommend adoption")
	}
}

func TestParseRelevance(t *testing.T) {
	cases := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"85", 0.85, false},
		{" 90%\n", 0.9, false},
		{"150", 1.0, false},
		{"not a number", 0, true},
	}

	for _, tc := range cases {
		got, err := parseRelevance(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseRelevance(%q) expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseRelevance(%q) error = %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseRelevance(%q) = %v, expected %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseParaphrases(t *testing.T) {
	raw := "1. How to maintain the pump\n2. Pump servicing steps\n\n3. Caring for the pump\n4. extra line"

	paraphrases := parseParaphrases(raw)
	if len(paraphrases) != 3 {
		t.Fatalf("Expected 3 paraphrases, got %d: %v", len(paraphrases), paraphrases)
	}
	if paraphrases[0] != "How to maintain the pump" {
		t.Errorf("List prefix not stripped: %q", paraphrases[0])
	}
}
