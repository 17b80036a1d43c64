package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/demografi/pkg/domain/interfaces"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/utils/apperr"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves the dashboard API
type Handler struct {
	dashboard interfaces.Dashboard
}

// NewHandler creates a new API handler
func NewHandler(dashboard interfaces.Dashboard) *Handler {
	return &Handler{
		dashboard: dashboard,
	}
}

type viewResponse struct {
	*model.View
	Chart []map[string]any `json:"chart"`
}

func newViewResponse(v *model.View) *viewResponse {
	return &viewResponse{View: v, Chart: v.ChartData()}
}

// HandleView returns one view
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseViewConfig(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	view, err := h.dashboard.BuildView(r.Context(), cfg)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, newViewResponse(view))
}

// HandleExport returns one view as a spreadsheet
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseViewConfig(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// buffered so a failure can still be reported as an error response
	var buf bytes.Buffer
	if err := h.dashboard.Export(r.Context(), cfg, &buf); err != nil {
		h.handleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("demografi-%s-%s.xlsx", cfg.Breakdown, cfg.GroupBy)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		ctxlog.From(r.Context()).Warn("Failed to write spreadsheet", "error", err)
	}
}

// HandleCategories returns the category set of a breakdown
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	b, err := parseBreakdown(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	set, err := h.dashboard.Categories(r.Context(), b)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"breakdown":  b,
		"categories": set,
	})
}

// HandleFilterOptions returns the selectable filter values of a breakdown
func (h *Handler) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	b, err := parseBreakdown(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	options, err := h.dashboard.FilterOptions(r.Context(), b)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"breakdown": b,
		"options":   options,
	})
}

// HandleOverview returns the default views of both breakdowns
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboard.Overview(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"gender": newViewResponse(overview.Gender),
		"age":    newViewResponse(overview.Age),
	})
}

// errorStatus maps an error to its HTTP status
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidViewConfig):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrBreakdownNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)

	switch status {
	case http.StatusBadRequest, http.StatusNotFound:
		writeError(w, r, err.Error(), status)
	case http.StatusBadGateway:
		ctxlog.From(r.Context()).Warn("Statistics unavailable", "error", err)
		writeError(w, r, model.ErrUpstreamUnavailable.Error(), status)
	default:
		apperr.Handle(r.Context(), err)
		writeError(w, r, http.StatusText(status), status)
	}
}
