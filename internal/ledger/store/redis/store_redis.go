package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"certledger/internal/ledger/models"
	"certledger/pkg/platform/sentinel"
)

const defaultKey = "certledger:document"

// Store keeps the ledger document under a single Redis key. SET replaces the
// value atomically, which satisfies the whole-document replace contract for
// deployments where several instances share one Redis.
type Store struct {
	client *redis.Client
	key    string
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the Redis key holding the document.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, key: defaultKey}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) Load(ctx context.Context) (models.Document, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewDocument(), nil
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("load ledger document: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Document{}, fmt.Errorf("parse ledger document: %w", sentinel.ErrCorrupt)
	}
	if doc.SchoolCertificates == nil {
		doc.SchoolCertificates = make(map[string]models.Record)
	}
	if doc.StudentCertificates == nil {
		doc.StudentCertificates = make(map[string]models.Record)
	}
	return doc, nil
}

func (s *Store) Replace(ctx context.Context, doc models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal ledger document: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("replace ledger document: %w", err)
	}
	return nil
}
