package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"certledger/internal/ledger/models"
	"certledger/pkg/platform/sentinel"
)

type FileStoreSuite struct {
	suite.Suite
	path  string
	store *Store
	ctx   context.Context
}

func (s *FileStoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "data", "certificates.json")
	s.store = New(s.path)
	s.ctx = context.Background()
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, new(FileStoreSuite))
}

func (s *FileStoreSuite) TestLoadMissingFile() {
	doc, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.NotNil(doc.SchoolCertificates)
	s.NotNil(doc.StudentCertificates)
	s.Empty(doc.SchoolCertificates)
}

func (s *FileStoreSuite) TestReplaceThenLoad() {
	doc := models.NewDocument()
	doc.SchoolCertificates["ABC123"] = models.Record{
		SchoolName: "Oak School",
		Region:     "Wales",
		IssuedAt:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
	doc.Stats.TotalSchoolCertificates = 1

	s.Require().NoError(s.store.Replace(s.ctx, doc))

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(doc, loaded)
}

func (s *FileStoreSuite) TestPersistedShape() {
	doc := models.NewDocument()
	doc.StudentCertificates["STUDENT1"] = models.Record{
		SchoolName: "Oak School",
		IssuedAt:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
	doc.Stats.TotalStudentCertificates = 1
	s.Require().NoError(s.store.Replace(s.ctx, doc))

	raw, err := os.ReadFile(s.path)
	s.Require().NoError(err)

	var shape map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(raw, &shape))
	s.Contains(shape, "school_certificates")
	s.Contains(shape, "student_certificates")
	s.Contains(shape, "stats")

	// Student records must not carry a region key.
	s.NotContains(string(shape["student_certificates"]), `"region"`)
}

func (s *FileStoreSuite) TestCorruptFileReported() {
	s.Require().NoError(os.MkdirAll(filepath.Dir(s.path), 0o755))
	s.Require().NoError(os.WriteFile(s.path, []byte("{definitely not json"), 0o644))

	_, err := s.store.Load(s.ctx)
	s.Require().ErrorIs(err, sentinel.ErrCorrupt)
}

func (s *FileStoreSuite) TestReplaceLeavesNoTempFiles() {
	doc := models.NewDocument()
	s.Require().NoError(s.store.Replace(s.ctx, doc))
	s.Require().NoError(s.store.Replace(s.ctx, doc))

	entries, err := os.ReadDir(filepath.Dir(s.path))
	s.Require().NoError(err)
	s.Len(entries, 1)
	s.Equal(filepath.Base(s.path), entries[0].Name())
}
