package repository

import (
	"context"
	"testing"
	"time"

	"scamshield/internal/domain/models"
)

func TestMemoryReportRepositoryCheck(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	for _, rep := range []*models.Report{
		{Type: models.ReportTypePhone, NormalizedValue: "+15551234567", ReportedAt: older},
		{Type: models.ReportTypePhone, NormalizedValue: "+15551234567", ReportedAt: newer},
		{Type: models.ReportTypeEmail, NormalizedValue: "+15551234567", ReportedAt: newer},
	} {
		if err := repo.Create(ctx, rep); err != nil {
			t.Fatal(err)
		}
		if rep.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Error("Create should assign an id")
		}
	}

	check, err := repo.Check(ctx, models.ReportTypePhone, "+15551234567")
	if err != nil {
		t.Fatal(err)
	}
	if !check.Reported || check.Count != 2 {
		t.Errorf("check = %+v, want 2 reports", check)
	}
	if check.LastReportedAt == nil || !check.LastReportedAt.Equal(newer) {
		t.Errorf("last reported = %v, want %v", check.LastReportedAt, newer)
	}

	none, err := repo.Check(ctx, models.ReportTypeURL, "example.com")
	if err != nil {
		t.Fatal(err)
	}
	if none.Reported || none.Count != 0 || none.LastReportedAt != nil {
		t.Errorf("unexpected check %+v", none)
	}
}

func TestMemoryReportRepositoryListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_ = repo.Create(ctx, &models.Report{
			Type:            models.ReportTypeURL,
			NormalizedValue: "evil.example",
			ReportedAt:      base.Add(time.Duration(i) * time.Minute),
		})
	}

	recent, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	if !recent[0].ReportedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("first = %v, want newest", recent[0].ReportedAt)
	}
}
