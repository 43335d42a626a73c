package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"leadfinder/pkg/logger"

	"go.uber.org/zap"
)

// WriteJSON writes v as a JSON response with the given status code.
// Encoding failures are logged; the status line is already sent by then.
func WriteJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "could not encode response", zap.Error(err))
	}
}
