package sku

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	})
	h := RequestID(zerolog.Nop())(next)

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if seen != "abc-123" || w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected request id abc-123, got ctx=%q header=%q", seen, w.Header().Get(RequestIDHeader))
	}
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	h := RequestID(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example/", nil))

	if id := w.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Fatalf("expected generated UUID, got %q", id)
	}
}

func TestAccessLog_WritesStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "nope")
	})
	h := RequestID(logger)(AccessLog(next))

	r := httptest.NewRequest(http.MethodPost, "http://example/sku", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), r)

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected one JSON log line, got %q", buf.String())
	}
	if line["status"] != float64(http.StatusBadRequest) || line["request_id"] != "req-1" || line["level"] != "warn" {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestRecoverer_ReturnsJSONEnvelope(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})
	h := Recoverer(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"kaboom"`) || !strings.Contains(w.Body.String(), `"status":"error"`) {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}
