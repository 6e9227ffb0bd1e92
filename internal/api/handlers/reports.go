package handlers

import (
	"net/http"
	"strconv"

	apimiddleware "scamshield/internal/api/middleware"
	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

// ReportsHandler handles community scam reports
type ReportsHandler struct {
	service *services.AnalysisService
	logger  *logger.Logger
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(service *services.AnalysisService, log *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		service: service,
		logger:  log.WithComponent("reports-handler"),
	}
}

// Submit handles POST /api/v1/reports
func (h *ReportsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReportRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}

	if req.Type == "" || req.Value == "" {
		respondError(w, http.StatusBadRequest, "type and value are required")
		return
	}

	report, err := h.service.SubmitReport(r.Context(), &req, reporterID(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "failed to submit report")
		return
	}

	respondJSON(w, http.StatusCreated, report)
}

// Check handles GET /api/v1/reports/check?type=&value=
func (h *ReportsHandler) Check(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t := models.ReportType(q.Get("type"))
	value := q.Get("value")
	if t == "" || value == "" {
		respondError(w, http.StatusBadRequest, "type and value query parameters are required")
		return
	}

	check, err := h.service.CheckReported(r.Context(), t, value)
	if err != nil {
		respondServiceError(w, h.logger, err, "failed to check report")
		return
	}

	respondJSON(w, http.StatusOK, check)
}

// Recent handles GET /api/v1/reports/recent?limit=
func (h *ReportsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	reports, err := h.service.RecentReports(r.Context(), limit)
	if err != nil {
		respondServiceError(w, h.logger, err, "failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reports": reports,
		"count":   len(reports),
	})
}

// reporterID identifies the submitter for de-duplication; the service
// stores only its hash
func reporterID(r *http.Request) string {
	if key := apimiddleware.GetAPIKey(r.Context()); key != "" {
		return "key:" + key
	}
	return "ip:" + apimiddleware.ClientIP(r)
}
