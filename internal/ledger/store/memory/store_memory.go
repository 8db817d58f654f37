package memory

import (
	"context"
	"sync"

	"certledger/internal/ledger/models"
)

// Store keeps the ledger document in process memory. It intentionally favors
// clarity over performance and exists for tests and single-process dev runs.
type Store struct {
	mu  sync.RWMutex
	doc models.Document
}

func New() *Store {
	return &Store{doc: models.NewDocument()}
}

func (s *Store) Load(_ context.Context) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone(), nil
}

func (s *Store) Replace(_ context.Context, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	return nil
}
