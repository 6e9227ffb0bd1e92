package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"scamshield/internal/domain/models"
	"scamshield/internal/infrastructure/database"
)

// ReportRepository handles community report persistence
type ReportRepository struct {
	db database.DBTX
}

// NewReportRepository creates a new report repository over a pool or transaction
func NewReportRepository(db database.DBTX) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new report
func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.ReportedAt.IsZero() {
		rep.ReportedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO community_reports (
			id, type, value, normalized_value, description, reporter_hash, reported_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		rep.ID, string(rep.Type), rep.Value, rep.NormalizedValue,
		rep.Description, rep.ReporterHash, rep.ReportedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// Check returns how often a normalized value has been reported
func (r *ReportRepository) Check(ctx context.Context, reportType models.ReportType, normalized string) (*models.ReportCheck, error) {
	query := `
		SELECT COUNT(*), MAX(reported_at)
		FROM community_reports
		WHERE type = $1 AND normalized_value = $2`

	var (
		count int64
		last  pgtype.Timestamptz
	)
	if err := r.db.QueryRow(ctx, query, string(reportType), normalized).Scan(&count, &last); err != nil {
		return nil, fmt.Errorf("failed to check report: %w", err)
	}

	check := &models.ReportCheck{
		Type:            reportType,
		NormalizedValue: normalized,
		Reported:        count > 0,
		Count:           int(count),
	}
	if last.Valid {
		t := last.Time
		check.LastReportedAt = &t
	}
	return check, nil
}

// ListRecent returns the most recent reports, newest first
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]*models.Report, error) {
	query := `
		SELECT id, type, value, normalized_value, description, reporter_hash, reported_at
		FROM community_reports
		ORDER BY reported_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		var (
			rep models.Report
			typ string
		)
		if err := rows.Scan(&rep.ID, &typ, &rep.Value, &rep.NormalizedValue,
			&rep.Description, &rep.ReporterHash, &rep.ReportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		rep.Type = models.ReportType(typ)
		reports = append(reports, &rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}
