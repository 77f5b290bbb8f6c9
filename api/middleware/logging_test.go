package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/voltmart-backend/pkg/logger"
)

type observedRequest struct {
	method string
	route  string
	status int
}

type recordingRequests struct {
	calls []observedRequest
}

func (r *recordingRequests) ObserveRequest(method, route string, status int, _ time.Duration) {
	r.calls = append(r.calls, observedRequest{method: method, route: route, status: status})
}

func TestLoggingRecordsRoutePattern(t *testing.T) {
	rec := &recordingRequests{}
	r := chi.NewRouter()
	r.Use(Logging(logger.Nop(), rec))
	r.Get("/api/v1/stores/{storeId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/stores/42", nil))

	if len(rec.calls) != 1 {
		t.Fatalf("expected one observation, got %d", len(rec.calls))
	}
	got := rec.calls[0]
	if got.route != "/api/v1/stores/{storeId}" || got.status != http.StatusTeapot || got.method != http.MethodGet {
		t.Fatalf("unexpected observation %+v", got)
	}
}

func TestLoggingDefaultsStatusToOK(t *testing.T) {
	rec := &recordingRequests{}
	handler := Logging(nil, rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.calls[0].status != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.calls[0].status)
	}
}
