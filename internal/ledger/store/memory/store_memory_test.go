package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"certledger/internal/ledger/models"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) TestLoadEmpty() {
	doc, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.NotNil(doc.SchoolCertificates)
	s.NotNil(doc.StudentCertificates)
	s.Empty(doc.SchoolCertificates)
}

func (s *MemoryStoreSuite) TestReplaceThenLoad() {
	doc := models.NewDocument()
	doc.SchoolCertificates["ABC123"] = models.Record{
		SchoolName: "Oak School",
		Region:     "Wales",
		IssuedAt:   time.Now().UTC(),
	}
	doc.Stats.TotalSchoolCertificates = 1

	s.Require().NoError(s.store.Replace(s.ctx, doc))

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(doc, loaded)
}

func (s *MemoryStoreSuite) TestCopiesIsolateCallers() {
	doc := models.NewDocument()
	doc.StudentCertificates["STUDENT1"] = models.Record{SchoolName: "Oak School"}
	s.Require().NoError(s.store.Replace(s.ctx, doc))

	// Mutations after Replace must not reach the store.
	doc.StudentCertificates["STUDENT2"] = models.Record{SchoolName: "Elm School"}

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Len(loaded.StudentCertificates, 1)

	// Nor must mutations of a loaded copy.
	loaded.StudentCertificates["STUDENT3"] = models.Record{SchoolName: "Ash School"}

	again, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Len(again.StudentCertificates, 1)
}
