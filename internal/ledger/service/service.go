// Package service implements the certificate ledger: a durable, append-only
// record of issued certificates with read-time aggregate statistics.
//
// Every public operation is a single critical section: acquire the mutex,
// load the document fresh from the store, mutate in memory, replace the whole
// document, release. Reloading per call (rather than trusting an in-memory
// copy) bounds lost updates when independent processes share a storage
// location. Callers block on the mutex without timeout.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"certledger/internal/audit"
	"certledger/internal/ledger/metrics"
	"certledger/internal/ledger/models"
	"certledger/internal/ledger/store"
	"certledger/pkg/platform/sentinel"
)

var tracer = otel.Tracer("certledger/internal/ledger")

// Service records certificate issuance events and serves statistics. Stores
// are pure I/O; all stamping, totals, and aggregation live here.
type Service struct {
	mu      sync.Mutex
	store   store.DocumentStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAuditPublisher wires anonymized issuance events. Audit failures are
// logged, never returned: the persisted document is the source of truth.
func WithAuditPublisher(p *audit.Publisher) Option {
	return func(s *Service) {
		s.audit = p
	}
}

// WithClock overrides the issuance timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(documents store.DocumentStore, opts ...Option) (*Service, error) {
	if documents == nil {
		return nil, fmt.Errorf("document store is required")
	}
	svc := &Service{
		store:  documents,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// RecordSchoolCertificate inserts or overwrites the school record for id.
// Collisions are not detected; the new record silently replaces the old one.
// The document is persisted before returning.
func (s *Service) RecordSchoolCertificate(ctx context.Context, id, schoolName, region string) error {
	ctx, span := tracer.Start(ctx, "ledger.RecordSchoolCertificate")
	defer span.End()

	if id == "" {
		return failSpan(span, fmt.Errorf("certificate id is required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return failSpan(span, err)
	}

	doc.SchoolCertificates[id] = models.Record{
		SchoolName: schoolName,
		Region:     region,
		IssuedAt:   s.now().UTC(),
	}
	refreshTotals(&doc)

	if err := s.store.Replace(ctx, doc); err != nil {
		return failSpan(span, err)
	}

	if s.metrics != nil {
		s.metrics.IncrementIssued(string(models.KindSchool))
	}
	s.emitAudit(ctx, audit.ActionSchoolCertificateIssued, id, region)
	return nil
}

// RecordStudentCertificate inserts or overwrites the student record for id.
// Student records carry the school name only, never the student's.
func (s *Service) RecordStudentCertificate(ctx context.Context, id, schoolName string) error {
	ctx, span := tracer.Start(ctx, "ledger.RecordStudentCertificate")
	defer span.End()

	if id == "" {
		return failSpan(span, fmt.Errorf("certificate id is required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return failSpan(span, err)
	}

	doc.StudentCertificates[id] = models.Record{
		SchoolName: schoolName,
		IssuedAt:   s.now().UTC(),
	}
	refreshTotals(&doc)

	if err := s.store.Replace(ctx, doc); err != nil {
		return failSpan(span, err)
	}

	if s.metrics != nil {
		s.metrics.IncrementIssued(string(models.KindStudent))
	}
	s.emitAudit(ctx, audit.ActionStudentCertificateIssued, id, "")
	return nil
}

// Stats computes aggregate statistics from the current persisted state.
func (s *Service) Stats(ctx context.Context) (models.Statistics, error) {
	ctx, span := tracer.Start(ctx, "ledger.Stats")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return models.Statistics{}, failSpan(span, err)
	}
	return computeStatistics(doc), nil
}

// Lookup returns the record for id and its kind. School records are checked
// before student records; a miss in both reports sentinel.ErrNotFound.
func (s *Service) Lookup(ctx context.Context, id string) (models.Record, models.Kind, error) {
	ctx, span := tracer.Start(ctx, "ledger.Lookup")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return models.Record{}, "", failSpan(span, err)
	}

	if rec, ok := doc.SchoolCertificates[id]; ok {
		return rec, models.KindSchool, nil
	}
	if rec, ok := doc.StudentCertificates[id]; ok {
		return rec, models.KindStudent, nil
	}
	return models.Record{}, "", failSpan(span, fmt.Errorf("certificate %q: %w", id, sentinel.ErrNotFound))
}

// Snapshot returns a copy of the full persisted document for admin reporting.
func (s *Service) Snapshot(ctx context.Context) (models.Document, error) {
	ctx, span := tracer.Start(ctx, "ledger.Snapshot")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return models.Document{}, failSpan(span, err)
	}
	return doc.Clone(), nil
}

// loadLocked loads the document, recovering from corruption by
// reinitializing to the empty state. Availability wins over data-loss
// detection: the unreadable document is overwritten on the next write.
// Callers must hold s.mu.
func (s *Service) loadLocked(ctx context.Context) (models.Document, error) {
	doc, err := s.store.Load(ctx)
	if errors.Is(err, sentinel.ErrCorrupt) {
		s.logger.Warn("ledger document corrupt, reinitializing", "error", err)
		if s.metrics != nil {
			s.metrics.IncrementRecoveries()
		}
		return models.NewDocument(), nil
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("load ledger: %w", err)
	}
	return doc, nil
}

func (s *Service) emitAudit(ctx context.Context, action, certificateID, region string) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Action:        action,
		CertificateID: certificateID,
		Region:        region,
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.Warn("audit emit failed", "action", action, "error", err)
	}
}

// refreshTotals keeps the persisted count block in step with the maps.
func refreshTotals(doc *models.Document) {
	doc.Stats.TotalSchoolCertificates = len(doc.SchoolCertificates)
	doc.Stats.TotalStudentCertificates = len(doc.StudentCertificates)
}

func computeStatistics(doc models.Document) models.Statistics {
	stats := models.Statistics{
		TotalSchoolCertificates:  len(doc.SchoolCertificates),
		TotalStudentCertificates: len(doc.StudentCertificates),
		CountByRegion:            make(map[string]int),
		PercentageByRegion:       make(map[string]float64),
		FixedRegionBreakdown:     make(map[string]int, len(models.FixedRegions)),
		FixedRegionPercentages:   make(map[string]float64, len(models.FixedRegions)),
	}

	for _, region := range models.FixedRegions {
		stats.FixedRegionBreakdown[region] = 0
		stats.FixedRegionPercentages[region] = 0
	}

	for _, rec := range doc.SchoolCertificates {
		region := rec.Region
		if region == "" {
			region = models.UnknownRegion
		}
		stats.CountByRegion[region]++

		if _, ok := stats.FixedRegionBreakdown[rec.Region]; ok {
			stats.FixedRegionBreakdown[rec.Region]++
		}
	}

	total := stats.TotalSchoolCertificates
	if total > 0 {
		for region, count := range stats.CountByRegion {
			stats.PercentageByRegion[region] = roundOneDecimal(100 * float64(count) / float64(total))
		}
		for region, count := range stats.FixedRegionBreakdown {
			stats.FixedRegionPercentages[region] = roundOneDecimal(100 * float64(count) / float64(total))
		}
	}
	return stats
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
