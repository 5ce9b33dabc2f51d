package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"envio-courier-tracking/internal/logx"
)

func TestObservabilityPassesThrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	h := Observability(logx.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/drivers", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, called)
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestPathPatternFallsBackToRawPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/no/route/ctx", nil)
	require.Equal(t, "/no/route/ctx", pathPattern(req))
}
