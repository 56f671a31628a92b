package sku

import (
	"net"
	"net/http"
	"strings"
	"time"

	"sku-gateway/sku/application"
	"sku-gateway/sku/domain"
	"sku-gateway/sku/infra"
)

type KeyFunc func(r *http.Request) string

type RateLimitOptions struct {
	Store               domain.LimiterStore
	Stats               domain.StatsStore
	RejectStatus        int
	RetryAfter          time.Duration
	AddRateLimitHeaders bool
}

type ConcurrencyOptions struct {
	Max            int
	RejectStatus   int
	AcquireTimeout time.Duration
	Stats          domain.StatsStore
}

type rateInfo interface {
	RPS() float64
	Burst() int
}

// DefaultKeyFunc identifica o cliente por header, X-Forwarded-For ou RemoteAddr,
// nessa ordem.
func DefaultKeyFunc(keyHeader string, trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		if keyHeader != "" {
			if v := strings.TrimSpace(r.Header.Get(keyHeader)); v != "" {
				return v
			}
		}

		if trustXFF {
			// primeiro IP do X-Forwarded-For é o cliente original
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

// RateLimit bloqueia o cliente que passou do token bucket com 429 + Retry-After.
// A chave vem do middleware ClientKey.
func RateLimit(opts RateLimitOptions) func(next http.Handler) http.Handler {
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}

	th := application.Throttle{
		Store:      opts.Store,
		RetryAfter: opts.RetryAfter,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, _ := clientKeyFrom(r.Context())

			if opts.AddRateLimitHeaders {
				w.Header().Set("X-RateLimit-Key", string(key))
				if ri, ok := opts.Store.(rateInfo); ok {
					w.Header().Set("X-RateLimit-RPS", formatFloat(ri.RPS()))
					w.Header().Set("X-RateLimit-Burst", formatInt(ri.Burst()))
				}
			}

			dec := th.Decide(key)
			if !dec.Allowed {
				recordStats(r.Context(), opts.Stats, domain.StatsEvent{Key: key, Outcome: domain.OutcomeThrottled, At: time.Now()})
				w.Header().Set("Retry-After", formatInt(int(dec.RetryAfter.Seconds())))
				writeError(w, opts.RejectStatus, http.StatusText(opts.RejectStatus))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Concurrency limita quantos requests passam ao mesmo tempo. Max <= 0 desliga.
func Concurrency(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}

	adm := application.Admission{
		Pool:           infra.NewSemaphore(opts.Max),
		AcquireTimeout: opts.AcquireTimeout,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, ok := adm.Acquire(r.Context())
			if !ok {
				key, _ := clientKeyFrom(r.Context())
				recordStats(r.Context(), opts.Stats, domain.StatsEvent{Key: key, Outcome: domain.OutcomeBusy, At: time.Now()})
				writeError(w, opts.RejectStatus, http.StatusText(opts.RejectStatus))
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
