package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"certledger/internal/ledger/models"
	"certledger/pkg/platform/sentinel"
)

// Store persists the ledger document as one JSON file. Replace writes to a
// temp file in the same directory and renames it over the target, so readers
// never observe a half-written document.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(_ context.Context) (models.Document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewDocument(), nil
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("read ledger file: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Document{}, fmt.Errorf("parse ledger file %s: %w", s.path, sentinel.ErrCorrupt)
	}
	if doc.SchoolCertificates == nil {
		doc.SchoolCertificates = make(map[string]models.Record)
	}
	if doc.StudentCertificates == nil {
		doc.StudentCertificates = make(map[string]models.Record)
	}
	return doc, nil
}

func (s *Store) Replace(_ context.Context, doc models.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp ledger file: %w", err)
	}

	// Rename is atomic on the same filesystem; the old document stays intact
	// until the new one is fully on disk.
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}
