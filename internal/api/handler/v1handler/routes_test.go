package v1handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadfinder/internal/api/handler/v1handler"
	mockleads "leadfinder/internal/leads/mock"
	"leadfinder/pkg/domain"
	"leadfinder/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMux(t *testing.T) (*mockleads.MockRunner, *http.ServeMux) {
	t.Helper()

	ctrl := gomock.NewController(t)
	runner := mockleads.NewMockRunner(ctrl)
	mux := http.NewServeMux()
	v1handler.New(v1handler.Deps{Runner: runner}).Register(mux)

	return runner, mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func TestLiveness(t *testing.T) {
	_, mux := newTestMux(t)

	rec := do(mux, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	require.Equal(t, v1handler.LivenessMessage, rec.Body.String())

	rec = do(mux, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRun_Success(t *testing.T) {
	runner, mux := newTestMux(t)
	runner.EXPECT().Run(gomock.Any(), domain.RunRequest{
		Mode:  domain.ModeWebsites,
		Items: []string{"example.com"},
	}).Return([]domain.Row{{Website: "example.com", Emails: []string{}, VerifiedEmails: []string{}}}, nil)

	rec := do(mux, http.MethodPost, "/api/run", `{"mode":"websites","items":["example.com"],"verify":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"rows":[{"name":"","phone":"","website":"example.com","address":"","rating":null,
		"emails":[],"verifiedEmails":[]}]}`, rec.Body.String())
}

func TestRun_PassesOptions(t *testing.T) {
	runner, mux := newTestMux(t)
	runner.EXPECT().Run(gomock.Any(), domain.RunRequest{
		Mode:       domain.ModePlaces,
		Items:      []string{"coffee shops in Seattle"},
		MaxResults: 7,
		Verify:     true,
	}).Return(nil, nil)

	rec := do(mux, http.MethodPost, "/api/run",
		`{"mode":"places","items":["coffee shops in Seattle"],"maxResults":7,"verify":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"rows":[]}`, rec.Body.String())
}

func TestRun_BadRequestFromRunner(t *testing.T) {
	runner, mux := newTestMux(t)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrBadRequest, "items must be a non-empty list"))

	rec := do(mux, http.MethodPost, "/api/run", `{"mode":"websites","items":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"items must be a non-empty list"}`, rec.Body.String())
}

func TestRun_InvalidJSON(t *testing.T) {
	_, mux := newTestMux(t)

	for _, body := range []string{"", "{", `{"items":"example.com"}`} {
		rec := do(mux, http.MethodPost, "/api/run", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)

		var res v1handler.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.NotEmpty(t, res.Error)
	}
}

func TestRun_InternalError(t *testing.T) {
	runner, mux := newTestMux(t)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrUpstream, `{"error":"quota exceeded"}`))

	rec := do(mux, http.MethodPost, "/api/run", `{"items":["q"]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"{\"error\":\"quota exceeded\"}"}`, rec.Body.String())
}

func TestRun_MethodNotAllowed(t *testing.T) {
	_, mux := newTestMux(t)

	rec := do(mux, http.MethodGet, "/api/run", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPlacesToCSV_Success(t *testing.T) {
	runner, mux := newTestMux(t)
	report := &domain.Report{
		Count: 1,
		Rows: []domain.ReportRow{{
			Row:      domain.Row{Name: `O"Brien's`, Emails: []string{}, VerifiedEmails: []string{}},
			Query:    "pubs",
			Verified: true,
		}},
		CSV: "name,address,phone,website,rating,emails,verified_emails\n" + `"O""Brien's","","","","","",""`,
	}
	runner.EXPECT().PlacesReport(gomock.Any(), "pubs", 0, true).Return(report, nil)

	rec := do(mux, http.MethodPost, "/api/places-to-csv", `{"textQuery":"pubs","verifyEmails":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 1, res.Count)
	require.Equal(t, "pubs", res.Rows[0].Query)
	require.True(t, res.Rows[0].Verified)
	require.Equal(t, `O"Brien's`, res.Rows[0].Name)
	require.Equal(t, report.CSV, res.CSV)
}

func TestPlacesToCSV_MissingQuery(t *testing.T) {
	runner, mux := newTestMux(t)
	runner.EXPECT().PlacesReport(gomock.Any(), "", 5, false).
		Return(nil, serrors.With(serrors.ErrBadRequest, "textQuery is required"))

	rec := do(mux, http.MethodPost, "/api/places-to-csv", `{"maxResults":5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"textQuery is required"}`, rec.Body.String())
}

func TestPlacesToCSV_MissingCredential(t *testing.T) {
	runner, mux := newTestMux(t)
	runner.EXPECT().PlacesReport(gomock.Any(), "q", 0, false).
		Return(nil, serrors.With(serrors.ErrBadRequest, "places API key is not configured"))

	rec := do(mux, http.MethodPost, "/api/places-to-csv", `{"textQuery":"q"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
