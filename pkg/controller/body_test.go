package controller_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadfinder/pkg/controller"

	"github.com/stretchr/testify/require"
)

// readAll echoes the number of bytes read, or 413 when the body is too large.
func readAll(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)

			return
		}
		require.NoError(t, err)
		_, _ = io.WriteString(w, strings.Repeat("x", len(b)))
	})
}

func TestWithBodyLimit_UnderLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	rec := httptest.NewRecorder()

	controller.WithBodyLimit(10)(readAll(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Body.String(), 10)
}

func TestWithBodyLimit_DeclaredLengthTooLarge(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("01234567890"))
	rec := httptest.NewRecorder()

	controller.WithBodyLimit(10)(next).ServeHTTP(rec, req)

	require.False(t, called)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"request body too large"}`, rec.Body.String())
}

func TestWithBodyLimit_StreamedBodyTooLarge(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader(strings.Repeat("a", 64))))
	req.ContentLength = -1
	rec := httptest.NewRecorder()

	controller.WithBodyLimit(16)(readAll(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestWithBodyLimit_Disabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 64)))
	rec := httptest.NewRecorder()

	controller.WithBodyLimit(0)(readAll(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Body.String(), 64)
}
