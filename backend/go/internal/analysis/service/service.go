// Package service exposes the analysis flows as one facade consumed by the
// HTTP handlers: document ingestion, single-question answering and parallel
// prompt analysis.
package service

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/loaders"
	"VaultMind/backend/go/internal/analysis/pipeline"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"VaultMind/backend/go/pkg/logger"
)

// AnalysisService bundles the analysis pipelines behind one API.
type AnalysisService struct {
	indexing     *pipeline.IndexingPipeline
	qa           *pipeline.QAPipeline
	orchestrator *pipeline.Orchestrator
	log          *logger.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(indexing *pipeline.IndexingPipeline, qa *pipeline.QAPipeline, orchestrator *pipeline.Orchestrator, log *logger.Logger) *AnalysisService {
	return &AnalysisService{
		indexing:     indexing,
		qa:           qa,
		orchestrator: orchestrator,
		log:          log,
	}
}

// IngestResult summarizes one ingestion run.
type IngestResult struct {
	DocumentIDs []string `json:"document_ids"`
	Fragments   int      `json:"fragments"`
}

// IngestFile loads the file at path with a loader picked by extension and
// indexes every resulting document into the vault.
func (s *AnalysisService) IngestFile(ctx context.Context, path, equipmentName, manufacturer string) (*IngestResult, error) {
	var loader interfaces.Loader
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		loader = loaders.NewPdfLoader()
	case ".txt":
		loader = loaders.NewTxtLoader()
	default:
		s.log.Warn(fmt.Sprintf("Unsupported file type '%s' for path %s. Defaulting to text loader.", ext, path))
		loader = loaders.NewTxtLoader()
	}

	documents, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	result := &IngestResult{}
	for _, doc := range documents {
		count, err := s.indexing.Run(ctx, doc, equipmentName, manufacturer)
		if err != nil {
			return nil, err
		}
		result.DocumentIDs = append(result.DocumentIDs, doc.ID)
		result.Fragments += count
	}

	s.log.Info(fmt.Sprintf("Ingested %s into %d fragments across %d documents", path, result.Fragments, len(result.DocumentIDs)))
	return result, nil
}

// Ask answers one free-text question over the vault.
func (s *AnalysisService) Ask(ctx context.Context, category, question, documentID string, equipmentVariants []string) (*schema.GenerateResult, error) {
	return s.qa.Run(ctx, category, question, documentID, equipmentVariants)
}

// Analyze runs the category's parallel prompt set against the question and
// returns the consolidated answer.
func (s *AnalysisService) Analyze(ctx context.Context, category, question, documentID string, equipmentVariants []string) (*schema.ConsolidatedAnswer, error) {
	return s.orchestrator.Run(ctx, category, question, documentID, equipmentVariants)
}
