package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServiceFailureStatusMapping(t *testing.T) {
	// Client-class upstream statuses pass through.
	require.Equal(t, http.StatusConflict, ServiceFailure(http.StatusConflict, "conflict", nil).StatusCode)
	require.Equal(t, http.StatusForbidden, ServiceFailure(http.StatusForbidden, "denied upstream", nil).StatusCode)

	// Server-class statuses and transport failures surface as 502.
	require.Equal(t, http.StatusBadGateway, ServiceFailure(http.StatusInternalServerError, "upstream blew up", nil).StatusCode)
	require.Equal(t, http.StatusBadGateway, ServiceFailure(0, "connection refused", errors.New("dial tcp: refused")).StatusCode)
}

func TestServiceFailureWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := ServiceFailure(0, "API request failed", cause)
	require.Equal(t, ErrCodeService, err.Code)
	require.ErrorIs(t, err, cause)
}

func TestCodeOfFallsBackToInternal(t *testing.T) {
	require.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
	require.Equal(t, ErrCodeNotFound, CodeOf(NotFound("missing")))
}
