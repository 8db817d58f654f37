package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Sink receives issuance events. It is append-only so tests and deployments
// can swap destinations (memory, Kafka) without touching the ledger.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher stamps and forwards issuance events to a sink.
type Publisher struct {
	sink Sink
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return p.sink.Append(ctx, event)
}
