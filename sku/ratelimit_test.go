package sku

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sku-gateway/sku/domain"
	"sku-gateway/sku/infra"
)

func withKey(fn KeyFunc, h http.Handler) http.Handler {
	return ClientKey(fn)(h)
}

func TestRateLimit_AllowsThenRejectsSameKey(t *testing.T) {
	store := infra.NewLimiterStore(0.02, 1)
	stats := infra.NewMemoryStatsStore()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	h := withKey(DefaultKeyFunc("", false), RateLimit(RateLimitOptions{
		Store:               store,
		Stats:               stats,
		RetryAfter:          time.Second,
		AddRateLimitHeaders: true,
	})(next))

	r1 := httptest.NewRequest(http.MethodPost, "http://example/sku", nil)
	r1.RemoteAddr = "10.0.0.1:1234"
	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, r1)
	if w1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w1.Code)
	}
	if got := w1.Header().Get("X-RateLimit-Key"); got != "10.0.0.1" {
		t.Fatalf("expected X-RateLimit-Key=10.0.0.1, got %q", got)
	}
	if got := w1.Header().Get("X-RateLimit-RPS"); got != "0.02" {
		t.Fatalf("expected X-RateLimit-RPS=0.02, got %q", got)
	}
	if got := w1.Header().Get("X-RateLimit-Burst"); got != "1" {
		t.Fatalf("expected X-RateLimit-Burst=1, got %q", got)
	}

	r2 := httptest.NewRequest(http.MethodPost, "http://example/sku", nil)
	r2.RemoteAddr = "10.0.0.1:1234"
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r2)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w2.Code)
	}
	if got := w2.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("expected Retry-After=1, got %q", got)
	}
	if !strings.Contains(w2.Body.String(), `"status":"error"`) {
		t.Fatalf("expected JSON error envelope, got %q", w2.Body.String())
	}

	if calls != 1 {
		t.Fatalf("expected next handler to be called once, got %d", calls)
	}
	snap, _ := stats.Snapshot(context.Background())
	if snap.Total[domain.OutcomeThrottled] != 1 {
		t.Fatalf("expected 1 throttled event, got %d", snap.Total[domain.OutcomeThrottled])
	}
}

func TestRateLimit_KeyByHeader(t *testing.T) {
	store := infra.NewLimiterStore(0.02, 1)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := withKey(DefaultKeyFunc("X-Api-Key", false), RateLimit(RateLimitOptions{Store: store})(next))

	// duas chaves diferentes no mesmo IP: cada uma tem seu limiter
	for _, k := range []string{"k1", "k2"} {
		r := httptest.NewRequest(http.MethodPost, "http://example/sku", nil)
		r.Header.Set("X-Api-Key", k)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for key %s, got %d", k, w.Code)
		}
	}
}

func TestRateLimit_RetryAfterUsesSeconds(t *testing.T) {
	store := infra.NewLimiterStore(0.02, 1)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := withKey(DefaultKeyFunc("", false), RateLimit(RateLimitOptions{
		Store:      store,
		RetryAfter: 2500 * time.Millisecond,
	})(next))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		r := httptest.NewRequest(http.MethodPost, "http://example/sku", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, w.Code)
		}
		if i == 1 {
			// int(2.5s.Seconds()) == 2
			if got := strings.TrimSpace(w.Header().Get("Retry-After")); got != "2" {
				t.Fatalf("expected Retry-After=2, got %q", got)
			}
		}
	}
}

func TestRouter_RateLimitOnlyGuardsSKU(t *testing.T) {
	h := NewRouter(Options{
		Limiter: infra.NewLimiterStore(0.02, 1),
	})

	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodGet, "http://example/health", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("expected health to stay 200, got %d", w.Code)
		}
	}

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodPost, "http://example/sku", strings.NewReader(`{"oem_code":"123"}`))
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected 200 then 429, got %v", codes)
	}
}
