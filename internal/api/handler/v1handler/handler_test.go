package v1handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"leadfinder/internal/api/handler/v1handler"
	"leadfinder/pkg/logger"
	"leadfinder/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Setup(logger.DevelopmentEnvironment, "error"); err != nil {
		panic(err)
	}
	m.Run()
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	status, res := h.NewError(context.Background(), errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "boom", res.Error)
}

func TestNewError_KindSentinelDirect_BadRequest(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	status, res := h.NewError(context.Background(), serrors.ErrBadRequest)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Error)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	err := serrors.With(serrors.ErrBadRequest, "items must be a non-empty list")
	status, res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "items must be a non-empty list", res.Error)
}

func TestNewError_WrappedUpstream_KeepsBody(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	body := `{"error":{"code":400,"message":"API key not valid"}}`
	err := fmt.Errorf("could not search places: %w", serrors.With(serrors.ErrUpstream, "%s", body))
	status, res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, body, res.Error)
}

func TestNewError_Timeout(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	err := serrors.Wrap(serrors.ErrTimeout, context.DeadlineExceeded, "run interrupted")
	status, res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusGatewayTimeout, status)
	require.Equal(t, "run interrupted", res.Error)
}

func TestNewError_InternalKind(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	status, res := h.NewError(context.Background(), serrors.KindOnly(serrors.ErrInternal))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, serrors.ErrInternal.Error(), res.Error)
}
