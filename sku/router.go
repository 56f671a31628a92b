package sku

import (
	"net/http"
	"time"

	"sku-gateway/sku/application"
	"sku-gateway/sku/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultVersion = "1.0.0"

// Options reúne tudo que o router precisa. Campos zerados desligam a parte
// correspondente (Limiter nil = sem rate limit, ConcurrencyMax 0 = sem limite).
type Options struct {
	Generator application.Generator
	Stats     domain.StatsStore
	Logger    *zerolog.Logger
	Version   string

	Limiter             domain.LimiterStore
	KeyFn               KeyFunc
	KeyHeader           string
	TrustXForwardedFor  bool
	RetryAfter          time.Duration
	AddRateLimitHeaders bool

	ConcurrencyMax int
	AcquireTimeout time.Duration
}

// NewRouter monta as rotas do serviço. Rate limit e concorrência valem só para
// POST /sku; health, info e stats ficam livres.
func NewRouter(opts Options) http.Handler {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}

	h := &Handler{
		Generator: opts.Generator,
		Stats:     opts.Stats,
		Version:   opts.Version,
		KeyFn:     opts.KeyFn,
	}

	r := chi.NewRouter()
	r.Use(RequestID(logger))
	r.Use(ClientKey(opts.KeyFn))
	r.Use(AccessLog)
	r.Use(Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	r.Get("/stats", h.StatsSnapshot)

	var guards []func(http.Handler) http.Handler
	if opts.Limiter != nil {
		guards = append(guards, RateLimit(RateLimitOptions{
			Store:               opts.Limiter,
			Stats:               opts.Stats,
			RetryAfter:          opts.RetryAfter,
			AddRateLimitHeaders: opts.AddRateLimitHeaders,
		}))
	}
	guards = append(guards, Concurrency(ConcurrencyOptions{
		Max:            opts.ConcurrencyMax,
		AcquireTimeout: opts.AcquireTimeout,
		Stats:          opts.Stats,
	}))
	r.With(guards...).Post("/sku", h.Generate)

	return r
}
