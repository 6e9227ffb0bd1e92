package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportType is the kind of value a user reported
type ReportType string

const (
	ReportTypeURL    ReportType = "url"
	ReportTypePhone  ReportType = "phone"
	ReportTypeWallet ReportType = "wallet"
	ReportTypeEmail  ReportType = "email"
)

// IsValid reports whether t is a supported report type
func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeURL, ReportTypePhone, ReportTypeWallet, ReportTypeEmail:
		return true
	}
	return false
}

// Report represents a user-submitted scam report
type Report struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Type            ReportType `json:"type" db:"type"`
	Value           string     `json:"value" db:"value"`
	NormalizedValue string     `json:"normalized_value" db:"normalized_value"`
	Description     string     `json:"description,omitempty" db:"description"`

	// Reporter info (anonymized)
	ReporterHash string `json:"-" db:"reporter_hash"`

	ReportedAt time.Time `json:"reported_at" db:"reported_at"`
}

// CreateReportRequest represents the request to create a report
type CreateReportRequest struct {
	Type        ReportType `json:"type"`
	Value       string     `json:"value"`
	Description string     `json:"description,omitempty"`
}

// ReportCheck is the answer to "has anyone reported this value?"
type ReportCheck struct {
	Type            ReportType `json:"type"`
	NormalizedValue string     `json:"normalized_value"`
	Reported        bool       `json:"reported"`
	Count           int        `json:"count"`
	LastReportedAt  *time.Time `json:"last_reported_at,omitempty"`
}
