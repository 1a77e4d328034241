package api

import (
	"VaultMind/backend/go/internal/analysis/service"
	"VaultMind/backend/go/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// API provides handlers for the analysis service.
type API struct {
	service *service.AnalysisService
	logger  *logger.Logger
}

// NewAPI creates a new API handler.
func NewAPI(service *service.AnalysisService, logger *logger.Logger) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

// IngestHandler handles ingestion of a document file into the vault.
func (a *API) IngestHandler(c *gin.Context) {
	var payload struct {
		Path          string `json:"path" binding:"required"`
		EquipmentName string `json:"equipment_name"`
		Manufacturer  string `json:"manufacturer"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.logger.WithError(err).Warn("Invalid ingest payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result, err := a.service.IngestFile(c.Request.Context(), payload.Path, payload.EquipmentName, payload.Manufacturer)
	if err != nil {
		a.logger.WithError(err).Error("Ingestion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest document"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// AskHandler answers a single free-text question over the vault.
func (a *API) AskHandler(c *gin.Context) {
	var payload struct {
		Category          string   `json:"category" binding:"required"`
		Question          string   `json:"question" binding:"required"`
		DocumentID        string   `json:"document_id"`
		EquipmentVariants []string `json:"equipment_variants"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.logger.WithError(err).Warn("Invalid ask payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result, err := a.service.Ask(c.Request.Context(), payload.Category, payload.Question, payload.DocumentID, payload.EquipmentVariants)
	if err != nil {
		a.logger.WithError(err).Error("Ask failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to answer question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":     result.Text,
		"tokens_in":  result.TokensIn,
		"tokens_out": result.TokensOut,
	})
}

// AnalyzeHandler runs the parallel prompt set of a category and returns the
// consolidated answer.
func (a *API) AnalyzeHandler(c *gin.Context) {
	var payload struct {
		Category          string   `json:"category" binding:"required"`
		Question          string   `json:"question" binding:"required"`
		DocumentID        string   `json:"document_id"`
		EquipmentVariants []string `json:"equipment_variants"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.logger.WithError(err).Warn("Invalid analyze payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	answer, err := a.service.Analyze(c.Request.Context(), payload.Category, payload.Question, payload.DocumentID, payload.EquipmentVariants)
	if err != nil {
		a.logger.WithError(err).Error("Analysis run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run analysis"})
		return
	}

	c.JSON(http.StatusOK, answer)
}

// HealthHandler reports liveness.
func (a *API) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
