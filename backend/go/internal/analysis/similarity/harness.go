package similarity

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"VaultMind/backend/go/pkg/logger"
)

// Strategy identifies one retrieval-quality strategy under evaluation.
type Strategy string

const (
	StrategyBaseline       Strategy = "baseline"
	StrategyHyDE           Strategy = "hypothetical_document"
	StrategyQueryExpansion Strategy = "query_expansion"
	StrategyLLMRelevance   Strategy = "llm_relevance"
	StrategyVectorAverage  Strategy = "vector_average"
)

// Verdict classifies the improvement of a strategy over the baseline.
type Verdict string

const (
	VerdictSignificant Verdict = "significant"
	VerdictModerate    Verdict = "moderate"
	VerdictNone        Verdict = "no_improvement"
)

// StrategyScore is the evaluation result for a single strategy.
type StrategyScore struct {
	Strategy       Strategy `json:"strategy"`
	Score          float64  `json:"score"`
	ImprovementPct float64  `json:"improvement_pct"`
	Verdict        Verdict  `json:"verdict"`
}

// Report ranks all evaluated strategies by score.
type Report struct {
	Baseline          float64         `json:"baseline"`
	Scores            []StrategyScore `json:"scores"`
	Recommended       Strategy        `json:"recommended"`
	RecommendAdoption bool            `json:"recommend_adoption"`
}

// Harness compares retrieval-quality strategies against a fixed
// document/query pair. It is an offline evaluation tool used to decide which
// strategy to adopt, not a per-request code path.
type Harness struct {
	embedder interfaces.EmbeddingModel
	llm      interfaces.LLM
	log      *logger.Logger

	// SignificantPct is the relative improvement over the baseline (in
	// percent) above which adoption is recommended.
	SignificantPct float64
}

// NewHarness creates a Harness with the default 10% significance threshold.
func NewHarness(embedder interfaces.EmbeddingModel, llm interfaces.LLM, log *logger.Logger) *Harness {
	return &Harness{
		embedder:       embedder,
		llm:            llm,
		log:            log,
		SignificantPct: 10,
	}
}

// Evaluate scores every strategy for the given document and query and ranks
// them. Strategies whose model calls fail are logged and omitted from the
// ranking; the baseline itself failing is a hard error.
func (h *Harness) Evaluate(ctx context.Context, document, query string) (*Report, error) {
	docEmbedding, err := h.embedder.Embed(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("failed to embed document: %w", err)
	}
	queryEmbedding, err := h.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	baseline, err := Cosine(docEmbedding, queryEmbedding)
	if err != nil {
		return nil, fmt.Errorf("baseline comparison failed: %w", err)
	}

	scores := []StrategyScore{{Strategy: StrategyBaseline, Score: baseline, Verdict: VerdictNone}}

	// Hypothetical document: answer-shaped text tends to sit closer to
	// source passages in embedding space than question-shaped text.
	var hydeEmbedding []float32
	if answer, err := h.generate(ctx, hydePrompt(query)); err != nil {
		h.warn(StrategyHyDE, err)
	} else if emb, err := h.embedder.Embed(ctx, strings.TrimSpace(answer)); err != nil {
		h.warn(StrategyHyDE, err)
	} else if score, err := Cosine(docEmbedding, emb); err != nil {
		h.warn(StrategyHyDE, err)
	} else {
		hydeEmbedding = emb
		scores = append(scores, h.scored(StrategyHyDE, score, baseline))
	}

	// Query expansion: score each paraphrase independently and keep the
	// best one.
	var firstParaphrase []float32
	if raw, err := h.generate(ctx, expansionPrompt(query)); err != nil {
		h.warn(StrategyQueryExpansion, err)
	} else {
		best := baseline
		for _, paraphrase := range parseParaphrases(raw) {
			emb, err := h.embedder.Embed(ctx, paraphrase)
			if err != nil {
				h.warn(StrategyQueryExpansion, err)
				continue
			}
			if firstParaphrase == nil {
				firstParaphrase = emb
			}
			score, err := Cosine(docEmbedding, emb)
			if err != nil {
				h.warn(StrategyQueryExpansion, err)
				continue
			}
			if score > best {
				best = score
			}
		}
		scores = append(scores, h.scored(StrategyQueryExpansion, best, baseline))
	}

	// LLM-judged relevance, normalized from 0-100 to [0, 1].
	if raw, err := h.generate(ctx, relevancePrompt(document, query)); err != nil {
		h.warn(StrategyLLMRelevance, err)
	} else if rating, err := parseRelevance(raw); err != nil {
		h.warn(StrategyLLMRelevance, err)
	} else {
		scores = append(scores, h.scored(StrategyLLMRelevance, rating, baseline))
	}

	// Vector averaging: combine the query with the hypothetical answer (or
	// the first paraphrase when HyDE failed) into a single vector.
	companion := hydeEmbedding
	if companion == nil {
		companion = firstParaphrase
	}
	if companion != nil {
		if avg, err := Average(queryEmbedding, companion); err != nil {
			h.warn(StrategyVectorAverage, err)
		} else if score, err := Cosine(docEmbedding, avg); err != nil {
			h.warn(StrategyVectorAverage, err)
		} else {
			scores = append(scores, h.scored(StrategyVectorAverage, score, baseline))
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	report := &Report{Baseline: baseline, Scores: scores, Recommended: scores[0].Strategy}
	report.RecommendAdoption = report.Recommended != StrategyBaseline && scores[0].Verdict == VerdictSignificant
	return report, nil
}

func (h *Harness) scored(strategy Strategy, score, baseline float64) StrategyScore {
	improvement := 0.0
	if baseline != 0 {
		improvement = (score - baseline) / math.Abs(baseline) * 100
	}

	verdict := VerdictNone
	switch {
	case improvement > h.SignificantPct:
		verdict = VerdictSignificant
	case improvement > 0:
		verdict = VerdictModerate
	}

	return StrategyScore{Strategy: strategy, Score: score, ImprovementPct: improvement, Verdict: verdict}
}

func (h *Harness) generate(ctx context.Context, prompt string) (string, error) {
	result, err := h.llm.Generate(ctx, &schema.GenerateRequest{
		Prompt:         prompt,
		ResponseFormat: schema.ResponseFormatText,
		Temperature:    0.7,
		MaxTokens:      256,
	})
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

func (h *Harness) warn(strategy Strategy, err error) {
	if h.log != nil {
		h.log.WithError(err).Warn(fmt.Sprintf("Strategy %s failed, omitting from ranking", strategy))
	}
}

func hydePrompt(query string) string {
	return fmt.Sprintf("Write a short, plausible answer to the following question, as it might appear in a technical document. Answer only, no preamble.\n\nQuestion: %s", query)
}

func expansionPrompt(query string) string {
	return fmt.Sprintf("Rephrase the following question in 3 semantically equivalent ways. Output one paraphrase per line, nothing else.\n\nQuestion: %s", query)
}

func relevancePrompt(document, query string) string {
	return fmt.Sprintf("On a scale from 0 to 100, how relevant is the following document to the question? Respond with the number only.\n\nQuestion: %s\n\nDocument:\n%s", query, document)
}

// parseParaphrases extracts up to three non-empty lines, stripping common
// list prefixes the model may add despite instructions.
func parseParaphrases(raw string) []string {
	var paraphrases []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•0123456789. ")
		if line == "" {
			continue
		}
		paraphrases = append(paraphrases, line)
		if len(paraphrases) == 3 {
			break
		}
	}
	return paraphrases
}

func parseRelevance(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, "%")
	rating, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed relevance rating %q: %w", raw, err)
	}
	if rating < 0 {
		rating = 0
	}
	if rating > 100 {
		rating = 100
	}
	return rating / 100, nil
}
