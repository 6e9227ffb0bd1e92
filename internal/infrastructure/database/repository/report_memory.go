package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"scamshield/internal/domain/models"
)

// MemoryReportRepository keeps community reports in process memory. It backs
// the service when no database is configured and in tests.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports []*models.Report
}

// NewMemoryReportRepository creates an empty in-memory report repository
func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{}
}

// Create stores a report
func (r *MemoryReportRepository) Create(_ context.Context, rep *models.Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.ReportedAt.IsZero() {
		rep.ReportedAt = time.Now().UTC()
	}

	stored := *rep
	r.mu.Lock()
	r.reports = append(r.reports, &stored)
	r.mu.Unlock()
	return nil
}

// Check returns how often a normalized value has been reported
func (r *MemoryReportRepository) Check(_ context.Context, reportType models.ReportType, normalized string) (*models.ReportCheck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	check := &models.ReportCheck{Type: reportType, NormalizedValue: normalized}
	for _, rep := range r.reports {
		if rep.Type != reportType || rep.NormalizedValue != normalized {
			continue
		}
		check.Count++
		if check.LastReportedAt == nil || rep.ReportedAt.After(*check.LastReportedAt) {
			t := rep.ReportedAt
			check.LastReportedAt = &t
		}
	}
	check.Reported = check.Count > 0
	return check, nil
}

// ListRecent returns the most recent reports, newest first
func (r *MemoryReportRepository) ListRecent(_ context.Context, limit int) ([]*models.Report, error) {
	r.mu.RLock()
	out := make([]*models.Report, 0, len(r.reports))
	for _, rep := range r.reports {
		c := *rep
		out = append(out, &c)
	}
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b *models.Report) int {
		return b.ReportedAt.Compare(a.ReportedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
