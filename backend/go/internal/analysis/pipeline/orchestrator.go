package pipeline

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"VaultMind/backend/go/pkg/logger"
)

// Orchestrator fans a category's parallel prompt templates out against the
// language model with bounded concurrency, retrieving fresh context per task,
// and consolidates the structured answers into one mapping.
//
// A failing task never aborts the run: its failure is classified and recorded
// in its result while the remaining tasks continue.
type Orchestrator struct {
	retrieval   *RetrievalPipeline
	catalog     interfaces.PromptCatalog
	llm         interfaces.LLM
	log         *logger.Logger
	maxInFlight int
	topK        int
}

// NewOrchestrator creates a new Orchestrator. maxInFlight bounds the number
// of concurrently executing prompt tasks.
func NewOrchestrator(retrieval *RetrievalPipeline, catalog interfaces.PromptCatalog, llm interfaces.LLM, maxInFlight, topK int, log *logger.Logger) *Orchestrator {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Orchestrator{
		retrieval:   retrieval,
		catalog:     catalog,
		llm:         llm,
		log:         log,
		maxInFlight: maxInFlight,
		topK:        topK,
	}
}

// Run executes every parallel prompt template registered for the category
// against the question. Results keep catalog order regardless of completion
// order. A category with no parallel templates is a synchronous error.
func (o *Orchestrator) Run(ctx context.Context, category, question, documentID string, equipmentVariants []string) (*schema.ConsolidatedAnswer, error) {
	templates, err := o.catalog.Templates(ctx, category, schema.PromptParallel)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no parallel prompt templates registered for category %s", category)
	}

	tasks := make([]*schema.PromptTask, len(templates))
	for i, t := range templates {
		tasks[i] = &schema.PromptTask{
			PromptID:   t.ID,
			Template:   t.Text,
			Variables:  map[string]string{"question": question},
			OutputKeys: t.OutputKeys,
		}
	}

	o.log.Info(fmt.Sprintf("Dispatching %d parallel prompts for category %s", len(tasks), category))
	started := time.Now()

	results := make([]schema.PromptResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxInFlight)
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = o.runTask(gctx, task, question, documentID, equipmentVariants)
			return nil
		})
	}
	// Tasks record their own failures, so Wait only synchronizes.
	_ = g.Wait()

	consolidated := o.consolidate(tasks, results)

	answer := &schema.ConsolidatedAnswer{
		PerPromptResults: results,
		Consolidated:     consolidated,
		GlobalMetadata:   aggregate(results, time.Since(started)),
	}

	o.log.WithPayload(map[string]interface{}{
		"category":  category,
		"succeeded": answer.GlobalMetadata.Succeeded,
		"failed":    answer.GlobalMetadata.Failed,
		"tokens":    answer.GlobalMetadata.TokensTotal,
	}).Info("Parallel prompt run finished")

	return answer, nil
}

// runTask executes one prompt task end to end. Every failure path returns a
// populated result; the task never panics the group.
func (o *Orchestrator) runTask(ctx context.Context, task *schema.PromptTask, question, documentID string, equipmentVariants []string) (result schema.PromptResult) {
	result = schema.PromptResult{
		PromptID: task.PromptID,
		Question: question,
	}
	started := time.Now()
	defer func() {
		result.Metadata.DurationMs = time.Since(started).Milliseconds()
	}()

	if err := ctx.Err(); err != nil {
		return failTask(result, schema.ErrorKindCancelled, err)
	}

	fragments, err := o.retrieval.Run(ctx, question, documentID, equipmentVariants, o.topK)
	if err != nil {
		if ctx.Err() != nil {
			return failTask(result, schema.ErrorKindCancelled, err)
		}
		return failTask(result, schema.ErrorKindRetrieval, err)
	}
	result.Metadata.ChunksUsed = len(fragments)

	variables := make(map[string]string, len(task.Variables)+1)
	for name, value := range task.Variables {
		variables[name] = value
	}
	variables["context"] = formatFragments(fragments)

	generated, err := o.llm.Generate(ctx, &schema.GenerateRequest{
		Prompt:         resolveTemplate(task.Template, variables),
		ResponseFormat: schema.ResponseFormatJSON,
	})
	if err != nil {
		if ctx.Err() != nil {
			return failTask(result, schema.ErrorKindCancelled, err)
		}
		return failTask(result, schema.ErrorKindModel, err)
	}
	result.Metadata.TokensIn = generated.TokensIn
	result.Metadata.TokensOut = generated.TokensOut

	var answer map[string]interface{}
	if err := json.Unmarshal([]byte(generated.Text), &answer); err != nil {
		return failTask(result, schema.ErrorKindModel, fmt.Errorf("model returned malformed JSON: %w", err))
	}
	result.Answer = answer

	return result
}

func failTask(result schema.PromptResult, kind schema.ErrorKind, err error) schema.PromptResult {
	result.Metadata.ErrorKind = kind
	result.Metadata.Error = err.Error()
	return result
}

// consolidate merges the declared output keys of every successful task into
// one mapping, walking tasks in catalog order. A task whose keys collide with
// already merged ones contributes nothing and is marked failed.
func (o *Orchestrator) consolidate(tasks []*schema.PromptTask, results []schema.PromptResult) map[string]interface{} {
	consolidated := make(map[string]interface{})
	for i := range results {
		if results[i].Metadata.Failed() {
			continue
		}

		var colliding []string
		for _, key := range tasks[i].OutputKeys {
			if _, taken := consolidated[key]; taken {
				colliding = append(colliding, key)
			}
		}
		if len(colliding) > 0 {
			results[i].Metadata.ErrorKind = schema.ErrorKindConsolidation
			results[i].Metadata.Error = fmt.Sprintf("output keys already claimed by an earlier prompt: %s", strings.Join(colliding, ", "))
			o.log.Warn(fmt.Sprintf("Prompt %s dropped from consolidation: %s", results[i].PromptID, results[i].Metadata.Error))
			continue
		}

		for _, key := range tasks[i].OutputKeys {
			if value, ok := results[i].Answer[key]; ok {
				consolidated[key] = value
			}
		}
	}
	return consolidated
}

// aggregate computes the run-level metrics from the per-task results.
func aggregate(results []schema.PromptResult, total time.Duration) schema.GlobalMetadata {
	meta := schema.GlobalMetadata{
		TotalDurationMs: total.Milliseconds(),
	}
	var durationSum int64
	for i := range results {
		durationSum += results[i].Metadata.DurationMs
		meta.TokensIn += results[i].Metadata.TokensIn
		meta.TokensOut += results[i].Metadata.TokensOut
		if results[i].Metadata.Failed() {
			meta.Failed++
		} else {
			meta.Succeeded++
		}
	}
	meta.TokensTotal = meta.TokensIn + meta.TokensOut
	if len(results) > 0 {
		meta.AvgDurationMs = durationSum / int64(len(results))
	}
	return meta
}
