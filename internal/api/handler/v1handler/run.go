package v1handler

import (
	"net/http"

	"leadfinder/pkg/controller"
	"leadfinder/pkg/domain"
)

// RunResponse is the body of a successful POST /api/run.
type RunResponse struct {
	Rows []domain.Row `json:"rows"`
}

// Run handles POST /api/run: it decodes a domain.RunRequest and returns the
// rows of the run.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.RunRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, err)

		return
	}

	rows, err := h.deps.Runner.Run(ctx, req)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}
	if rows == nil {
		rows = []domain.Row{}
	}

	controller.WriteJSON(ctx, w, http.StatusOK, RunResponse{Rows: rows})
}
