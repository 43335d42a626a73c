// Package v1handler implements the JSON endpoints of the lead finder API.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"leadfinder/internal/leads"
	"leadfinder/pkg/controller"
	"leadfinder/pkg/logger"
	"leadfinder/pkg/serrors"

	"go.uber.org/zap"
)

// LivenessMessage is the plain-text body served on GET /.
const LivenessMessage = "lead finder is running"

// Deps holds the services the handlers delegate to.
type Deps struct {
	Runner leads.Runner
}

// Handler serves the v1 endpoints.
type Handler struct {
	deps Deps
}

// New creates a Handler backed by deps.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts every v1 route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Liveness)
	mux.HandleFunc("POST /api/run", h.Run)
	mux.HandleFunc("POST /api/places-to-csv", h.PlacesToCSV)
}

// Liveness answers with a fixed plain-text message.
func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, LivenessMessage)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewError maps err to a status code and response body. Client errors keep
// their message, upstream failures carry the upstream body and anything else
// surfaces its own message.
func (h *Handler) NewError(ctx context.Context, err error) (int, ErrorResponse) {
	status := http.StatusInternalServerError
	switch serrors.KindOf(err) {
	case serrors.ErrBadRequest:
		status = http.StatusBadRequest
	case serrors.ErrTimeout:
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Int("status", status), zap.Error(err))
	} else {
		logger.Info(ctx, "request rejected", zap.Int("status", status), zap.Error(err))
	}

	return status, ErrorResponse{Error: serrors.MessageOf(err)}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := h.NewError(ctx, err)
	controller.WriteJSON(ctx, w, status, body)
}

// decodeJSON reads a single JSON document from the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return serrors.Wrap(serrors.ErrBadRequest, err, "request body exceeds %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return serrors.With(serrors.ErrBadRequest, "request body is empty")
		default:
			return serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body: %s", err.Error())
		}
	}

	return nil
}
