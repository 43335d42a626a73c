package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadfinder/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	controller.WriteJSON(context.Background(), rec, http.StatusBadRequest, map[string]string{"error": "nope"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"nope"}`, rec.Body.String())
}
