package store

import (
	"context"

	"certledger/internal/ledger/models"
)

// DocumentStore persists the ledger as a single document. Implementations are
// interface-driven to keep the service testable and to allow swapping
// in-memory, file-based, or external persistence without rewiring business
// code.
//
// Load returns an initialized empty document when the backend holds nothing
// yet. A document that exists but cannot be parsed is reported by wrapping
// sentinel.ErrCorrupt; any other failure surfaces as-is.
//
// Replace must swap the whole document atomically: concurrent readers see
// either the previous or the new document, never a partial write.
type DocumentStore interface {
	Load(ctx context.Context) (models.Document, error)
	Replace(ctx context.Context, doc models.Document) error
}
