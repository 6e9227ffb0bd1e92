package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisKind names the entry point that produced an assessment
type AnalysisKind string

const (
	AnalysisKindURL     AnalysisKind = "url"
	AnalysisKindMessage AnalysisKind = "message"
	AnalysisKindWebsite AnalysisKind = "website"
)

// URLAnalysisRequest represents a URL analysis request
type URLAnalysisRequest struct {
	URL string `json:"url"`
}

// URLBatchAnalysisRequest represents a batch URL analysis request
type URLBatchAnalysisRequest struct {
	URLs []string `json:"urls"`
}

// MessageAnalysisRequest represents a free-text analysis request
type MessageAnalysisRequest struct {
	Text string `json:"text"`
}

// WebsiteAnalysisRequest carries a URL plus either a scraped snapshot or raw HTML
type WebsiteAnalysisRequest struct {
	URL      string        `json:"url"`
	Snapshot *PageSnapshot `json:"snapshot,omitempty"`
	HTML     string        `json:"html,omitempty"`
}

// AnalysisResponse wraps an assessment with host-side metadata
type AnalysisResponse struct {
	ID               uuid.UUID       `json:"id"`
	Kind             AnalysisKind    `json:"kind"`
	Hostname         string          `json:"hostname,omitempty"`
	ExpandedURL      string          `json:"expanded_url,omitempty"`
	Assessment       *RiskAssessment `json:"assessment"`
	CommunityReports int             `json:"community_reports"`
	CacheHit         bool            `json:"cache_hit"`
	CheckedAt        time.Time       `json:"checked_at"`
}

// URLBatchAnalysisResponse represents the response to a batch URL analysis
type URLBatchAnalysisResponse struct {
	Results        []AnalysisResponse `json:"results"`
	TotalCount     int                `json:"total_count"`
	DangerousCount int                `json:"dangerous_count"`
	CheckedAt      time.Time          `json:"checked_at"`
}
