package httpmetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/tasks", "/tasks"},
		{"/tasks/3f1c2a9e-6b1d-4f7a-9c2e-0a1b2c3d4e5f", "/tasks/{id}"},
		{"/tasks/3F1C2A9E-6B1D-4F7A-9C2E-0A1B2C3D4E5F/status", "/tasks/{id}/status"},
		{"/tasks/42", "/tasks/{id}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.in), tt.in)
	}
}

func TestCollector_Wrap(t *testing.T) {
	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/tasks/{id}"))

	h := New().Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/tasks/3f1c2a9e-6b1d-4f7a-9c2e-0a1b2c3d4e5f", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/tasks/{id}"))
	assert.Equal(t, before+1, after)
	assert.Zero(t, testutil.ToFloat64(metrics.HTTPRequestsInFlight))
}
