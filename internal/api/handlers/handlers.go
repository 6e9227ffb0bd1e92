package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"scamshield/internal/domain/services"
	"scamshield/internal/streaming"
	"scamshield/pkg/logger"
)

// maxBodyBytes bounds JSON request bodies other than website analysis
const maxBodyBytes = 1 << 20

// Pinger is a dependency probed by /ready
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds all API handlers
type Handlers struct {
	Health    *HealthHandler
	Analysis  *AnalysisHandler
	Reports   *ReportsHandler
	Brands    *BrandsHandler
	Streaming *StreamingHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Service  *services.AnalysisService
	Checks   map[string]Pinger
	EventBus *streaming.EventBus
	WSHub    *streaming.WebSocketHub
	Version  string
	Logger   *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Checks, deps.Version, deps.Logger),
		Analysis:  NewAnalysisHandler(deps.Service, deps.Logger),
		Reports:   NewReportsHandler(deps.Service, deps.Logger),
		Brands:    NewBrandsHandler(deps.Service.Engine().Registry()),
		Streaming: NewStreamingHandler(deps.WSHub, deps.EventBus, deps.Logger),
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps validation errors to 400 with their message and
// hides everything else behind a 500
func respondServiceError(w http.ResponseWriter, log *logger.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, services.ErrInvalidReport),
		errors.Is(err, services.ErrUnsupportedReportType):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		log.Error().Err(err).Msg(fallback)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			respondError(w, http.StatusBadRequest, "invalid request body")
		}
		return false
	}
	return true
}
