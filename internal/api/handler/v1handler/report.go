package v1handler

import (
	"net/http"

	"leadfinder/pkg/controller"
	"leadfinder/pkg/domain"
)

// PlacesToCSVRequest is the body of POST /api/places-to-csv.
type PlacesToCSVRequest struct {
	TextQuery    string `json:"textQuery"`
	MaxResults   int    `json:"maxResults,omitempty"`
	VerifyEmails bool   `json:"verifyEmails,omitempty"`
}

// PlacesToCSV handles POST /api/places-to-csv: one places query rendered as
// rows plus a CSV document.
func (h *Handler) PlacesToCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PlacesToCSVRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, err)

		return
	}

	report, err := h.deps.Runner.PlacesReport(ctx, req.TextQuery, req.MaxResults, req.VerifyEmails)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}
	if report.Rows == nil {
		report.Rows = []domain.ReportRow{}
	}

	controller.WriteJSON(ctx, w, http.StatusOK, report)
}
