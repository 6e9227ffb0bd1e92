package handlers

import (
	"net/http"

	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

// AnalysisHandler handles the risk analysis endpoints
type AnalysisHandler struct {
	service *services.AnalysisService
	logger  *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *services.AnalysisService, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		logger:  log.WithComponent("analysis-handler"),
	}
}

// AnalyzeURL handles POST /api/v1/analyze/url
func (h *AnalysisHandler) AnalyzeURL(w http.ResponseWriter, r *http.Request) {
	var req models.URLAnalysisRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}

	result, err := h.service.AnalyzeURL(r.Context(), req.URL)
	if err != nil {
		respondServiceError(w, h.logger, err, "failed to analyze URL")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// AnalyzeURLBatch handles POST /api/v1/analyze/url/batch
func (h *AnalysisHandler) AnalyzeURLBatch(w http.ResponseWriter, r *http.Request) {
	var req models.URLBatchAnalysisRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}

	result, err := h.service.AnalyzeURLBatch(r.Context(), req.URLs)
	if err != nil {
		respondServiceError(w, h.logger, err, "failed to analyze URLs")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// AnalyzeMessage handles POST /api/v1/analyze/message
func (h *AnalysisHandler) AnalyzeMessage(w http.ResponseWriter, r *http.Request) {
	var req models.MessageAnalysisRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}

	result, err := h.service.AnalyzeMessage(r.Context(), req.Text)
	if err != nil {
		respondServiceError(w, h.logger, err, "failed to analyze message")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// AnalyzeWebsite handles POST /api/v1/analyze/website
func (h *AnalysisHandler) AnalyzeWebsite(w http.ResponseWriter, r *http.Request) {
	// raw HTML travels JSON-escaped, so allow room beyond the HTML limit
	limit := int64(h.service.Options().MaxHTMLBytes)*2 + maxBodyBytes

	var req models.WebsiteAnalysisRequest
	if !decodeJSON(w, r, limit, &req) {
		return
	}

	result, err := h.service.AnalyzeWebsite(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "failed to analyze website")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
