package streaming

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"scamshield/internal/domain/models"
)

// EventType represents the type of streamed event
type EventType string

const (
	EventTypeScamDetected    EventType = "scam_detected"
	EventTypeReportSubmitted EventType = "report_submitted"
)

// ScamEvent is emitted when an analysis renders a scam verdict, or when a
// user reports a value
type ScamEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// Analysis details
	Kind       models.AnalysisKind `json:"kind,omitempty"`
	Subject    string              `json:"subject"`
	Score      int                 `json:"score,omitempty"`
	RiskLevel  models.RiskLevel    `json:"risk_level,omitempty"`
	ScamType   string              `json:"scam_type,omitempty"`
	Confidence int                 `json:"confidence,omitempty"`

	// Report details
	ReportType models.ReportType `json:"report_type,omitempty"`
}

// NewScamEvent creates a detection event from an assessment. subject is a
// hostname for URL and website analyses and a digest for messages.
func NewScamEvent(kind models.AnalysisKind, subject string, a *models.RiskAssessment) *ScamEvent {
	return &ScamEvent{
		ID:         uuid.New().String(),
		Type:       EventTypeScamDetected,
		Timestamp:  time.Now(),
		Kind:       kind,
		Subject:    subject,
		Score:      a.Score,
		RiskLevel:  a.RiskLevel,
		ScamType:   a.ScamType,
		Confidence: a.Confidence,
	}
}

// NewReportEvent creates an event for a stored community report
func NewReportEvent(r *models.Report) *ScamEvent {
	return &ScamEvent{
		ID:         uuid.New().String(),
		Type:       EventTypeReportSubmitted,
		Timestamp:  r.ReportedAt,
		Subject:    r.NormalizedValue,
		ReportType: r.Type,
	}
}

// Subscription represents a client's subscription preferences
type Subscription struct {
	// Filter by minimum score (0 = all)
	MinScore int `json:"min_score,omitempty"`

	// Filter by analysis kinds (empty = all)
	Kinds []models.AnalysisKind `json:"kinds,omitempty"`

	// Include community report events
	IncludeReports bool `json:"include_reports,omitempty"`
}

// Matches checks if an event matches the subscription filters
func (s *Subscription) Matches(event *ScamEvent) bool {
	if event.Type == EventTypeReportSubmitted {
		return s.IncludeReports
	}
	if event.Score < s.MinScore {
		return false
	}
	if len(s.Kinds) > 0 && !slices.Contains(s.Kinds, event.Kind) {
		return false
	}
	return true
}
