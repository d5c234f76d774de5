package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killbill/killbill-moneris-plugin/internal/infrastructure/messaging"
	"github.com/killbill/killbill-moneris-plugin/pkg/events"
	pkgkafka "github.com/killbill/killbill-moneris-plugin/pkg/kafka"
)

type fakeProducer struct {
	topic    string
	messages []pkgkafka.Message
	err      error
	calls    int
}

func (f *fakeProducer) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	f.calls++
	f.topic = topic
	f.messages = append(f.messages, messages...)
	return f.err
}

type testEvent struct {
	events.BaseEvent
	Note string `json:"note"`
}

func newEvent(aggregateID string) testEvent {
	return testEvent{
		BaseEvent: events.NewBaseEvent("moneris.test", aggregateID, "Payment", "tenant-1"),
		Note:      "hello",
	}
}

func TestPublisher_Publish(t *testing.T) {
	producer := &fakeProducer{}
	pub := messaging.NewPublisher(producer)

	evt := newEvent("payment-1")
	require.NoError(t, pub.Publish(context.Background(), "killbill.moneris.transactions", evt))

	assert.Equal(t, "killbill.moneris.transactions", producer.topic)
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, []byte("payment-1"), msg.Key)
	assert.Equal(t, "moneris.test", msg.Headers["event_type"])
	assert.Equal(t, "Payment", msg.Headers["aggregate_type"])
	assert.Equal(t, evt.EventID(), msg.Headers["event_id"])
	assert.Equal(t, "tenant-1", msg.Headers["tenant_id"])

	var env struct {
		EventID   string          `json:"event_id"`
		EventType string          `json:"event_type"`
		TenantID  string          `json:"tenant_id"`
		Data      json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, evt.EventID(), env.EventID)
	assert.Equal(t, "tenant-1", env.TenantID)
	assert.JSONEq(t, `{"note":"hello"}`, string(env.Data))
}

func TestPublisher_NoEvents(t *testing.T) {
	producer := &fakeProducer{}
	pub := messaging.NewPublisher(producer)

	require.NoError(t, pub.Publish(context.Background(), "topic"))
	assert.Zero(t, producer.calls)
}

func TestPublisher_ProducerError(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	pub := messaging.NewPublisher(producer)

	err := pub.Publish(context.Background(), "topic", newEvent("payment-1"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka publish")
	assert.Contains(t, err.Error(), "broker down")
}
