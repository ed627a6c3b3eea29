// Package service implements headquarters/branch resolution on top of the
// flat record store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"swiftindex/internal/audit"
	"swiftindex/internal/platform/metrics"
	"swiftindex/internal/platform/middleware"
	"swiftindex/internal/swift"
	dErrors "swiftindex/pkg/domain-errors"
)

// Messages surfaced to clients. Kept verbatim so responses stay stable for
// integrators.
const (
	msgNotFound      = "SWIFT: %s, data not found"
	msgNotFoundISO2  = "for ISO2: %s, data not found"
	msgAlreadyExists = "Record with Swift-code: %s already exist"
	msgWrongXXXUse   = "Swift code ending with 'XXX' must be used for headquarters"
)

// CodeAggregate is the result of a code lookup. Branches is nil for a
// non-headquarters record and non-nil (possibly empty) for a headquarters;
// the distinction is part of the response contract.
type CodeAggregate struct {
	Record   swift.Record
	Branches []swift.Record
}

// CountryAggregate is the result of a country lookup.
type CountryAggregate struct {
	CountryISO2 string
	CountryName string
	Records     []swift.Record
}

// Service answers lookups and applies single-record mutations.
type Service struct {
	store   swift.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher
	tracer  trace.Tracer
}

// New creates the resolution service.
func New(store swift.Store, logger *slog.Logger, m *metrics.Metrics, auditor audit.Publisher) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		metrics: m,
		audit:   auditor,
		tracer:  otel.Tracer("swiftindex/swift"),
	}
}

// GetByCode looks up a record and, for a headquarters, resolves its branch
// list by the shared 8-character prefix.
func (s *Service) GetByCode(ctx context.Context, code string) (*CodeAggregate, error) {
	ctx, span := s.tracer.Start(ctx, "swift.GetByCode")
	defer span.End()

	rec, err := s.store.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, swift.ErrNotFound) {
			s.metrics.IncOperation("get_by_code", "not_found")
			return nil, dErrors.Newf(dErrors.CodeNotFound, msgNotFound, code)
		}
		s.metrics.IncOperation("get_by_code", "error")
		return nil, fmt.Errorf("get %s: %w", code, err)
	}

	agg := &CodeAggregate{Record: *rec}
	if rec.IsHeadquarter {
		branches, err := s.store.GetBranches(ctx, swift.Prefix(code))
		if err != nil {
			s.metrics.IncOperation("get_by_code", "error")
			return nil, fmt.Errorf("resolve branches of %s: %w", code, err)
		}
		if branches == nil {
			branches = []swift.Record{}
		}
		agg.Branches = branches
	}
	s.metrics.IncOperation("get_by_code", "ok")
	return agg, nil
}

// GetByCountry returns every record for a country. The country name is taken
// from the first matching record.
func (s *Service) GetByCountry(ctx context.Context, countryISO2 string) (*CountryAggregate, error) {
	ctx, span := s.tracer.Start(ctx, "swift.GetByCountry")
	defer span.End()

	records, err := s.store.GetByCountry(ctx, countryISO2)
	if err != nil {
		s.metrics.IncOperation("get_by_country", "error")
		return nil, fmt.Errorf("get country %s: %w", countryISO2, err)
	}
	if len(records) == 0 {
		s.metrics.IncOperation("get_by_country", "not_found")
		return nil, dErrors.Newf(dErrors.CodeNotFound, msgNotFoundISO2, countryISO2)
	}

	s.metrics.IncOperation("get_by_country", "ok")
	return &CountryAggregate{
		CountryISO2: countryISO2,
		CountryName: records[0].CountryName,
		Records:     records,
	}, nil
}

// Add validates and inserts one record. The XXX-suffix check runs before the
// uniqueness check so a malformed duplicate reports the format problem. A
// lost insert race surfaces as the same conflict the existence check catches.
func (s *Service) Add(ctx context.Context, rec swift.Record) error {
	ctx, span := s.tracer.Start(ctx, "swift.Add")
	defer span.End()

	if rec.IsHeadquarter != swift.IsHeadquarterCode(rec.SwiftCode) {
		s.metrics.IncOperation("add", "invalid")
		return dErrors.New(dErrors.CodeBadRequest, msgWrongXXXUse)
	}

	exists, err := s.store.Exists(ctx, rec.SwiftCode)
	if err != nil {
		s.metrics.IncOperation("add", "error")
		return fmt.Errorf("check existence of %s: %w", rec.SwiftCode, err)
	}
	if exists {
		s.metrics.IncOperation("add", "conflict")
		return dErrors.Newf(dErrors.CodeConflict, msgAlreadyExists, rec.SwiftCode)
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		if errors.Is(err, swift.ErrDuplicate) {
			s.metrics.IncOperation("add", "conflict")
			return dErrors.Newf(dErrors.CodeConflict, msgAlreadyExists, rec.SwiftCode)
		}
		s.metrics.IncOperation("add", "error")
		return fmt.Errorf("insert %s: %w", rec.SwiftCode, err)
	}

	s.metrics.IncOperation("add", "ok")
	s.emitAudit(ctx, audit.ActionAdd, rec.SwiftCode)
	return nil
}

// Delete removes one record by code. Deleting a headquarters does not
// cascade; its branches stay in the store and are simply no longer grouped.
func (s *Service) Delete(ctx context.Context, code string) error {
	ctx, span := s.tracer.Start(ctx, "swift.Delete")
	defer span.End()

	exists, err := s.store.Exists(ctx, code)
	if err != nil {
		s.metrics.IncOperation("delete", "error")
		return fmt.Errorf("check existence of %s: %w", code, err)
	}
	if !exists {
		s.metrics.IncOperation("delete", "not_found")
		return dErrors.Newf(dErrors.CodeNotFound, msgNotFound, code)
	}

	if err := s.store.Delete(ctx, code); err != nil {
		if errors.Is(err, swift.ErrNotFound) {
			// lost a race with a concurrent delete
			s.metrics.IncOperation("delete", "not_found")
			return dErrors.Newf(dErrors.CodeNotFound, msgNotFound, code)
		}
		s.metrics.IncOperation("delete", "error")
		return fmt.Errorf("delete %s: %w", code, err)
	}

	s.metrics.IncOperation("delete", "ok")
	s.emitAudit(ctx, audit.ActionDelete, code)
	return nil
}

func (s *Service) emitAudit(ctx context.Context, action audit.Action, code string) {
	event := audit.NewEvent(action)
	event.SwiftCode = code
	event.RequestID = middleware.GetRequestID(ctx)
	s.audit.Emit(ctx, event)
}
