package streaming

import (
	"context"

	"scamshield/internal/domain/models"
)

// EventBusPublisher implements services.EventPublisher using the EventBus
type EventBusPublisher struct {
	eventBus *EventBus
}

// NewEventBusPublisher creates a new publisher adapter
func NewEventBusPublisher(eventBus *EventBus) *EventBusPublisher {
	return &EventBusPublisher{eventBus: eventBus}
}

// PublishDetection publishes a scam verdict
func (p *EventBusPublisher) PublishDetection(ctx context.Context, kind models.AnalysisKind, subject string, a *models.RiskAssessment) error {
	return p.eventBus.Publish(ctx, NewScamEvent(kind, subject, a))
}

// PublishReport publishes a stored community report
func (p *EventBusPublisher) PublishReport(ctx context.Context, r *models.Report) error {
	return p.eventBus.Publish(ctx, NewReportEvent(r))
}
