package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggingMiddleware_AssignsRequestID(t *testing.T) {
	mw := NewLoggingMiddleware(createTestLogger(), nil)

	var seenID string
	handler := mw.Handler(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/match-history", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	if seenID == "" {
		t.Error("expected request ID assigned to context")
	}
}

func TestLoggingMiddleware_RecordsMetrics(t *testing.T) {
	metrics := NewMetricsCollector(createTestLogger())
	mw := NewLoggingMiddleware(createTestLogger(), metrics)

	handler := mw.Handler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest("GET", "/match-history", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	metrics.mu.RLock()
	defer metrics.mu.RUnlock()

	if metrics.requestCount["/match-history"] != 1 {
		t.Errorf("expected 1 recorded request, got %d", metrics.requestCount["/match-history"])
	}
	if metrics.requestErrors["/match-history"] != 1 {
		t.Errorf("expected 404 counted as error, got %d", metrics.requestErrors["/match-history"])
	}
}

func TestResponseWriter_CapturesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	wrapped.WriteHeader(http.StatusForbidden)

	if wrapped.statusCode != http.StatusForbidden {
		t.Errorf("expected captured status 403, got %d", wrapped.statusCode)
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("expected propagated status 403, got %d", w.Code)
	}
}

func TestGetRequestID_MissingValue(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	if id := GetRequestID(req.Context()); id != "" {
		t.Errorf("expected empty request ID, got %q", id)
	}
}
