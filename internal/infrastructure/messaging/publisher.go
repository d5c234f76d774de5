package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/port"
	"github.com/killbill/killbill-moneris-plugin/pkg/events"
	pkgkafka "github.com/killbill/killbill-moneris-plugin/pkg/kafka"
)

var _ port.EventPublisher = (*Publisher)(nil)

// MessageProducer is the part of pkg/kafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements EventPublisher using Kafka. Each event is wrapped in
// an events.Envelope and keyed by its aggregate so a payment's events stay
// in order on one partition.
type Publisher struct {
	producer MessageProducer
}

func NewPublisher(producer MessageProducer) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) Publish(ctx context.Context, topic string, domainEvents ...events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		payload, err := json.Marshal(events.NewEnvelope(evt))
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
				"event_id":       evt.EventID(),
				"tenant_id":      evt.TenantID(),
			},
		})
	}
	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}
