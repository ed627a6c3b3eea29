// Package handler is the thin HTTP layer over the resolution service. It
// validates input, shapes responses, and translates domain errors; business
// rules stay in the service.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"swiftindex/internal/platform/metrics"
	"swiftindex/internal/platform/middleware"
	"swiftindex/internal/swift"
	"swiftindex/internal/swift/service"
	dErrors "swiftindex/pkg/domain-errors"
	"swiftindex/pkg/platform/httputil"
)

// Service defines the resolution operations the handler depends on.
type Service interface {
	GetByCode(ctx context.Context, code string) (*service.CodeAggregate, error)
	GetByCountry(ctx context.Context, countryISO2 string) (*service.CountryAggregate, error)
	Add(ctx context.Context, rec swift.Record) error
	Delete(ctx context.Context, code string) error
}

// Handler handles the /v1/swift-codes endpoints.
type Handler struct {
	logger  *slog.Logger
	swift   Service
	metrics *metrics.Metrics
}

// New creates a swift-codes Handler.
func New(svc Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, swift: svc, metrics: m}
}

// Register mounts the swift-codes routes with the standard middleware chain.
func (h *Handler) Register(r chi.Router) {
	sub := chi.NewRouter()
	sub.Use(middleware.Recovery(h.logger))
	sub.Use(middleware.RequestID)
	sub.Use(middleware.Logger(h.logger))
	sub.Use(middleware.Timeout(30 * time.Second))
	sub.Use(middleware.ContentTypeJSON)
	sub.Use(middleware.Latency(h.metrics))
	sub.Get("/country/{countryISO2code}", h.handleGetByCountry)
	sub.Get("/{swiftCode}", h.handleGetByCode)
	sub.Post("/", h.handleAdd)
	sub.Delete("/{swiftCode}", h.handleDelete)

	r.Mount("/v1/swift-codes", sub)
}

func (h *Handler) handleGetByCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := chi.URLParam(r, "swiftCode")
	if !swiftCodeRe.MatchString(code) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, msgWrongSwiftFormat))
		return
	}

	agg, err := h.swift.GetByCode(ctx, code)
	if err != nil {
		h.writeServiceError(ctx, w, "get by code", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCodeResponse(agg))
}

func (h *Handler) handleGetByCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	iso2 := chi.URLParam(r, "countryISO2code")
	if !countryISO2Re.MatchString(iso2) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, msgWrongISO2Format))
		return
	}

	agg, err := h.swift.GetByCountry(ctx, iso2)
	if err != nil {
		h.writeServiceError(ctx, w, "get by country", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCountryResponse(agg))
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid add request body",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if msg := req.Validate(); msg != "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, msg))
		return
	}

	if err := h.swift.Add(ctx, req.ToRecord()); err != nil {
		h.writeServiceError(ctx, w, "add", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.SuccessResponse{
		Message: fmt.Sprintf(msgAddSuccess, req.SwiftCode),
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := chi.URLParam(r, "swiftCode")
	if !swiftCodeRe.MatchString(code) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, msgWrongSwiftFormat))
		return
	}

	if err := h.swift.Delete(ctx, code); err != nil {
		h.writeServiceError(ctx, w, "delete", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.SuccessResponse{
		Message: fmt.Sprintf(msgDeleteSuccess, code),
	})
}

// writeServiceError logs unexpected failures and lets the envelope writer
// classify the rest.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if !dErrors.Is(err, dErrors.CodeNotFound) &&
		!dErrors.Is(err, dErrors.CodeConflict) &&
		!dErrors.Is(err, dErrors.CodeBadRequest) {
		h.logger.ErrorContext(ctx, "swift operation failed",
			"request_id", middleware.GetRequestID(ctx),
			"operation", op,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
