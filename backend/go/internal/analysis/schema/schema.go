package schema

import "time"

// Document is a source document submitted for analysis. It is immutable once
// ingested and is the source of truth for chunk generation.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]interface{}
}

// Chunk is a bounded text fragment cut from a document for embedding and
// retrieval. Start and End are rune offsets into the (line-ending normalized)
// document text, with 0 <= Start <= End <= len(document).
type Chunk struct {
	Text  string
	Start int
	End   int
}

// Fragment is a chunk as stored in or retrieved from the knowledge vault,
// together with the entity metadata retrieval filters on and, on search
// results, the similarity score.
type Fragment struct {
	ID            string
	DocumentID    string
	Text          string
	Start         int
	End           int
	EquipmentName string
	Manufacturer  string
	Embedding     []float32
	Score         float64
}

// FilterFragment is a parameterized boolean restriction appended to a larger
// WHERE clause. The number of positional placeholders in Condition always
// equals len(Params), numbered contiguously from the offset the caller
// supplied when building it. The zero value is the identity fragment and
// imposes no restriction.
type FilterFragment struct {
	Condition string
	Params    []string
}

// PromptKind distinguishes the two template families in the catalog.
type PromptKind string

const (
	PromptSingle   PromptKind = "single"
	PromptParallel PromptKind = "parallel"
)

// PromptTemplate is a catalog entry: the template text with its declared
// variable names and, for parallel prompts, the JSON keys its response
// contributes to the consolidated answer.
type PromptTemplate struct {
	ID         string
	Category   string
	Kind       PromptKind
	Position   int
	Text       string
	Variables  []string
	OutputKeys []string
}

// PromptTask is one resolved parallel prompt ready for dispatch.
type PromptTask struct {
	PromptID   string
	Template   string
	Variables  map[string]string
	OutputKeys []string
}

// ErrorKind classifies a per-task failure inside an orchestration run.
type ErrorKind string

const (
	ErrorKindRetrieval     ErrorKind = "retrieval_error"
	ErrorKindModel         ErrorKind = "model_error"
	ErrorKindCancelled     ErrorKind = "cancelled"
	ErrorKindConsolidation ErrorKind = "consolidation_conflict"
)

// TaskMetadata carries the telemetry recorded for one prompt task.
type TaskMetadata struct {
	DurationMs int64     `json:"duration_ms"`
	TokensIn   int       `json:"tokens_in"`
	TokensOut  int       `json:"tokens_out"`
	ChunksUsed int       `json:"chunks_used"`
	ErrorKind  ErrorKind `json:"error_kind,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Failed reports whether the task reached a terminal failure state.
func (m *TaskMetadata) Failed() bool {
	return m.ErrorKind != ""
}

// PromptResult is the outcome of one prompt task, immutable after completion.
type PromptResult struct {
	PromptID string                 `json:"prompt_id"`
	Question string                 `json:"question"`
	Answer   map[string]interface{} `json:"answer,omitempty"`
	Metadata TaskMetadata           `json:"metadata"`
}

// GlobalMetadata aggregates telemetry across all tasks of a run.
// TotalDurationMs is the wall-clock span of the run, not the sum of per-task
// durations, since tasks execute concurrently.
type GlobalMetadata struct {
	TotalDurationMs int64 `json:"total_duration_ms"`
	AvgDurationMs   int64 `json:"avg_duration_ms"`
	TokensTotal     int   `json:"tokens_total"`
	TokensIn        int   `json:"tokens_in"`
	TokensOut       int   `json:"tokens_out"`
	Succeeded       int   `json:"succeeded"`
	Failed          int   `json:"failed"`
}

// ConsolidatedAnswer is the sole externally visible artifact of an
// orchestration run: per-task results in original task order, the merged
// mapping of every successful task's output keys, and aggregate metrics.
type ConsolidatedAnswer struct {
	PerPromptResults []PromptResult         `json:"per_prompt_results"`
	Consolidated     map[string]interface{} `json:"consolidated"`
	GlobalMetadata   GlobalMetadata         `json:"global_metadata"`
}

// ResponseFormat selects the output shape requested from the language model.
type ResponseFormat string

const (
	ResponseFormatText ResponseFormat = "free-text"
	ResponseFormatJSON ResponseFormat = "json"
)

// GenerateRequest is a single language model invocation.
type GenerateRequest struct {
	Prompt         string
	ResponseFormat ResponseFormat
	Temperature    float32
	MaxTokens      int
}

// GenerateResult is the model output with its call telemetry.
type GenerateResult struct {
	Text      string
	TokensIn  int
	TokensOut int
	Duration  time.Duration
}
