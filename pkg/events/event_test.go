package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := "agg-123"
	tenantID := "tenant-456"

	before := time.Now().UTC()
	event := NewBaseEvent("moneris.transaction.recorded", aggregateID, "Payment", tenantID)
	after := time.Now().UTC()

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}
	if event.EventType() != "moneris.transaction.recorded" {
		t.Errorf("expected event type %q, got %q", "moneris.transaction.recorded", event.EventType())
	}
	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}
	if event.AggregateType() != "Payment" {
		t.Errorf("expected aggregate type %q, got %q", "Payment", event.AggregateType())
	}
	if event.TenantID() != tenantID {
		t.Errorf("expected tenant ID %q, got %q", tenantID, event.TenantID())
	}
	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestNewBaseEventUniqueIDs(t *testing.T) {
	a := NewBaseEvent("x", "agg", "Payment", "t")
	b := NewBaseEvent("x", "agg", "Payment", "t")
	if a.EventID() == b.EventID() {
		t.Error("expected distinct event ids")
	}
}

type sampleEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
}

func TestEnvelopeJSON(t *testing.T) {
	evt := sampleEvent{
		BaseEvent: NewBaseEvent("moneris.transaction.recorded", "pay-1", "Payment", "tenant-1"),
		OrderID:   "abc",
	}

	raw, err := json.Marshal(NewEnvelope(evt))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["event_id"] != evt.EventID() {
		t.Errorf("event_id = %v, want %v", decoded["event_id"], evt.EventID())
	}
	if decoded["tenant_id"] != "tenant-1" {
		t.Errorf("tenant_id = %v, want tenant-1", decoded["tenant_id"])
	}
	data, ok := decoded["data"].(map[string]any)
	if !ok {
		t.Fatalf("data is %T, want object", decoded["data"])
	}
	if data["order_id"] != "abc" {
		t.Errorf("data.order_id = %v, want abc", data["order_id"])
	}
}
