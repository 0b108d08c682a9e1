package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/category-api/internal/api/shared"
	"github.com/phrazzld/category-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()
	buf, base := logger.NewTestLogger(t)

	var traceID string
	handler := NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

	require.NotEmpty(t, traceID)
	assert.Equal(t, traceID, w.Header().Get(TraceIDHeader))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, traceID, e["trace_id"])
	}
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		write      bool
		wantStatus float64
		wantLevel  string
	}{
		{"implicit ok", 0, true, 200, "INFO"},
		{"created", http.StatusCreated, true, 201, "INFO"},
		{"not found", http.StatusNotFound, true, 404, "INFO"},
		{"server error", http.StatusInternalServerError, false, 500, "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf, l := logger.NewTestLogger(t)
			handler := RequestLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.status != 0 {
					w.WriteHeader(tc.status)
				}
				if tc.write {
					_, _ = w.Write([]byte("body"))
				}
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/categories", nil))

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tc.wantLevel, entry["level"])
			assert.Equal(t, "POST", entry["method"])
			assert.Equal(t, "/categories", entry["path"])
			assert.Equal(t, tc.wantStatus, entry["status"])
			assert.Contains(t, entry, "duration")
		})
	}
}

func TestRequestLogger_UsesContextLogger(t *testing.T) {
	t.Parallel()
	fallbackBuf, fallback := logger.NewTestLogger(t)
	traceBuf, base := logger.NewTestLogger(t)

	handler := NewTraceMiddleware(base)(RequestLogger(fallback)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/categories/x", nil))

	assert.Empty(t, fallbackBuf.String())
	logger.AssertLogContains(t, traceBuf, "request completed")
	logger.AssertLogField(t, traceBuf, "status", float64(http.StatusNoContent))
}
