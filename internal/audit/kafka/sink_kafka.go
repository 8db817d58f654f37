package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"certledger/internal/audit"
)

// Sink publishes issuance events to a Kafka topic as JSON. Production is
// synchronous so the caller learns about broker failures; the ledger treats
// those as log-and-continue since the persisted document is the source of
// truth.
type Sink struct {
	client *kgo.Client
	topic  string
}

// New builds a sink on an existing franz-go client. The caller owns the
// client lifecycle.
func New(client *kgo.Client, topic string) *Sink {
	return &Sink{client: client, topic: topic}
}

// NewClient dials Kafka with the given seed brokers.
func NewClient(seeds []string) (*kgo.Client, error) {
	client, err := kgo.NewClient(kgo.SeedBrokers(seeds...))
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.CertificateID),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}
