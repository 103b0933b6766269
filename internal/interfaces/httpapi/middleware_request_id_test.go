package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubIDGenerator struct {
	id  string
	err error
}

func (g stubIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

func captureRequestID(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = requestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	handler := RequestID(stubIDGenerator{id: "abc123"}, captureRequestID(&seen))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/teams", nil))

	if seen != "abc123" {
		t.Fatalf("unexpected request id in context: %q", seen)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "abc123" {
		t.Fatalf("unexpected X-Request-ID header: %q", got)
	}
}

func TestRequestID_KeepsInboundHeader(t *testing.T) {
	var seen string
	handler := RequestID(stubIDGenerator{id: "generated"}, captureRequestID(&seen))

	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.Header.Set("X-Request-ID", "from-gateway")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "from-gateway" {
		t.Fatalf("expected inbound id to be kept, got %q", seen)
	}
}

func TestRequestID_ReplacesOversizedHeader(t *testing.T) {
	var seen string
	handler := RequestID(stubIDGenerator{id: "generated"}, captureRequestID(&seen))

	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 200))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "generated" {
		t.Fatalf("expected oversized id to be replaced, got %q", seen)
	}
}

func TestRequestID_GeneratorFailureStillServes(t *testing.T) {
	var seen string
	handler := RequestID(stubIDGenerator{err: errors.New("no entropy")}, captureRequestID(&seen))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if seen != "" || rec.Header().Get("X-Request-ID") != "" {
		t.Fatalf("expected no request id, got context=%q header=%q", seen, rec.Header().Get("X-Request-ID"))
	}
}
