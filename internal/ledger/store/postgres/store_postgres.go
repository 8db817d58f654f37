package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"certledger/internal/ledger/models"
	"certledger/pkg/platform/sentinel"
)

// Store keeps the whole ledger document in a single JSONB row. This store is
// pure I/O; statistics and record stamping belong in the service.
//
// The single-row shape preserves the whole-document replace contract: an
// upsert swaps the entire document in one statement, so independent processes
// sharing the database never observe partial state.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the backing table. Callers run it once at startup.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS certificate_ledger (
			id  INT PRIMARY KEY CHECK (id = 1),
			doc JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate certificate_ledger: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (models.Document, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM certificate_ledger WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
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

	query := `
		INSERT INTO certificate_ledger (id, doc, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, raw); err != nil {
		return fmt.Errorf("replace ledger document: %w", err)
	}
	return nil
}
