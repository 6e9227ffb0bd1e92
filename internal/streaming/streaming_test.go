package streaming

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"scamshield/internal/domain/models"
	"scamshield/pkg/logger"
)

type fakeBroker struct {
	mu        sync.Mutex
	connected bool
	err       error
	events    []*ScamEvent
}

func (b *fakeBroker) Publish(_ context.Context, e *ScamEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
	return b.err
}

func (b *fakeBroker) IsConnected() bool { return b.connected }

func dangerous() *models.RiskAssessment {
	return &models.RiskAssessment{
		Score:      90,
		RiskLevel:  models.RiskLevelDangerous,
		IsScam:     true,
		ScamType:   models.ScamTypePhishing,
		Confidence: 80,
	}
}

func TestSubject(t *testing.T) {
	det := NewScamEvent(models.AnalysisKindURL, "evil.example", dangerous())
	if got := Subject("scams.detected", det); got != "scams.detected.url" {
		t.Errorf("detection subject = %q", got)
	}

	rep := NewReportEvent(&models.Report{Type: models.ReportTypePhone, NormalizedValue: "+15551234567"})
	if got := Subject("scams.detected", rep); got != "scams.reported.phone" {
		t.Errorf("report subject = %q", got)
	}

	if got := Subject("scams.detected", &ScamEvent{Type: EventTypeScamDetected}); got != "scams.detected.unknown" {
		t.Errorf("empty kind subject = %q", got)
	}
}

func TestSubscriptionMatches(t *testing.T) {
	urlEvent := NewScamEvent(models.AnalysisKindURL, "evil.example", dangerous())
	report := NewReportEvent(&models.Report{Type: models.ReportTypeEmail})

	tests := []struct {
		name  string
		sub   Subscription
		event *ScamEvent
		want  bool
	}{
		{"empty matches detections", Subscription{}, urlEvent, true},
		{"empty skips reports", Subscription{}, report, false},
		{"reports opt in", Subscription{IncludeReports: true}, report, true},
		{"score below minimum", Subscription{MinScore: 95}, urlEvent, false},
		{"kind filter hit", Subscription{Kinds: []models.AnalysisKind{models.AnalysisKindURL}}, urlEvent, true},
		{"kind filter miss", Subscription{Kinds: []models.AnalysisKind{models.AnalysisKindMessage}}, urlEvent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.Matches(tt.event); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventBusPublish(t *testing.T) {
	broker := &fakeBroker{connected: true}
	bus := NewEventBus(broker, logger.NewNop())

	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	pub := NewEventBusPublisher(bus)
	if err := pub.PublishDetection(context.Background(), models.AnalysisKindWebsite, "evil.example", dangerous()); err != nil {
		t.Fatalf("PublishDetection: %v", err)
	}

	select {
	case e := <-ch:
		if e.Subject != "evil.example" || e.Kind != models.AnalysisKindWebsite || e.Score != 90 {
			t.Errorf("unexpected event %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered to local subscriber")
	}

	if len(broker.events) != 1 {
		t.Errorf("broker received %d events, want 1", len(broker.events))
	}
}

func TestEventBusBrokerFailureIsNotFatal(t *testing.T) {
	broker := &fakeBroker{connected: true, err: errors.New("boom")}
	bus := NewEventBus(broker, logger.NewNop())

	if err := bus.Publish(context.Background(), NewScamEvent(models.AnalysisKindURL, "x", dangerous())); err != nil {
		t.Fatalf("Publish should swallow broker errors, got %v", err)
	}
}

func TestEventBusSkipsDisconnectedBroker(t *testing.T) {
	broker := &fakeBroker{connected: false}
	bus := NewEventBus(broker, logger.NewNop())

	_ = bus.Publish(context.Background(), NewScamEvent(models.AnalysisKindURL, "x", dangerous()))
	if len(broker.events) != 0 {
		t.Error("disconnected broker should not be called")
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus(nil, logger.NewNop())
	_, unsubscribe := bus.Subscribe()
	if bus.SubscriberCount() != 1 {
		t.Fatalf("subscribers = %d, want 1", bus.SubscriberCount())
	}
	unsubscribe()
	unsubscribe()
	if bus.SubscriberCount() != 0 {
		t.Fatalf("subscribers = %d, want 0", bus.SubscriberCount())
	}
}

func TestWebSocketHubStreamsDetections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewEventBus(nil, logger.NewNop())
	hub := NewWebSocketHub(bus, logger.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWebSocket))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for (hub.ClientCount() == 0 || bus.SubscriberCount() == 0) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ClientCount() != 1 {
		t.Fatalf("clients = %d, want 1", hub.ClientCount())
	}

	_ = bus.Publish(ctx, NewScamEvent(models.AnalysisKindMessage, "digest", dangerous()))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got ScamEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != EventTypeScamDetected || got.Kind != models.AnalysisKindMessage {
		t.Errorf("unexpected event %+v", got)
	}
}
