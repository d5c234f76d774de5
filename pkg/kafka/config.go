package kafka

import "time"

// Config holds Kafka producer parameters.
type Config struct {
	ClientID string

	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	Brokers []string

	// WriteTimeout bounds a single publish; zero uses the kafka-go default.
	WriteTimeout time.Duration

	// TLS enables TLS for Kafka connections.
	TLS         bool
	SASLEnabled bool

	// AutoCreateTopics lets the broker create a topic on first publish.
	AutoCreateTopics bool
}
