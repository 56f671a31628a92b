package sku

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sku-gateway/sku/application"
	"sku-gateway/sku/domain"

	"github.com/rs/zerolog"
)

// Handler expõe o gerador e as rotas auxiliares (health, info, stats).
type Handler struct {
	Generator application.Generator
	Stats     domain.StatsStore
	Version   string
	KeyFn     KeyFunc
}

func (h *Handler) clientKey(r *http.Request) domain.Key {
	if k, ok := clientKeyFrom(r.Context()); ok {
		return k
	}
	if h.KeyFn != nil {
		return domain.Key(h.KeyFn(r))
	}
	return ""
}

func (h *Handler) record(ctx context.Context, ev domain.StatsEvent) {
	recordStats(ctx, h.Stats, ev)
}

// Generate atende POST /sku.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	key := h.clientKey(r)

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		err := &domain.InternalError{Err: fmt.Errorf("%v", rec)}
		logger.Error().Err(err).Msg("sku generation panicked")
		h.record(r.Context(), domain.StatsEvent{Key: key, Outcome: domain.OutcomeFailed, At: time.Now()})
		writeError(w, http.StatusInternalServerError, err.Error())
	}()

	res, err := h.generate(r)
	if err != nil {
		status, outcome := classifyError(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Msg("sku generation failed")
		} else {
			logger.Debug().Err(err).Msg("sku request rejected")
		}
		h.record(r.Context(), domain.StatsEvent{Key: key, Outcome: outcome, At: time.Now()})
		writeError(w, status, err.Error())
		return
	}

	logger.Debug().
		Str("sku", res.SKU).
		Str("prefix", res.Prefix).
		Str("duty", res.Duty).
		Str("fabricante", res.Manufacturer).
		Msg("sku generated")
	h.record(r.Context(), domain.StatsEvent{Key: key, Outcome: domain.OutcomeGenerated, Prefix: res.Prefix, At: time.Now()})
	writeJSON(w, http.StatusOK, NewSKUResponse(res))
}

func (h *Handler) generate(r *http.Request) (domain.Result, error) {
	req, err := decodeRequest(r)
	if err != nil {
		return domain.Result{}, err
	}
	return h.Generator.Generate(req)
}

// classifyError mapeia o erro para status HTTP e desfecho de stats.
func classifyError(err error) (int, domain.Outcome) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, domain.OutcomeRejected
	}
	return http.StatusInternalServerError, domain.OutcomeFailed
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    statusOK,
		Timestamp: h.now().UTC().Format(domain.TimestampLayout),
	})
}

func (h *Handler) now() time.Time {
	if h.Generator.Clock != nil {
		return h.Generator.Clock.Now()
	}
	return time.Now()
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Name:    "SKU Generator API",
		Version: h.Version,
		Endpoints: map[string]string{
			"POST /sku":   "Generate SKU from OEM code",
			"GET /health": "Health check",
			"GET /stats":  "Generation counters",
		},
		Example: indexExample{
			URL: "POST /sku",
			Body: map[string]string{
				"oem_code":   "21707132",
				"duty":       "HD",
				"fabricante": "OEM",
			},
		},
	})
}

// StatsSnapshot atende GET /stats quando o store configurado consegue ler snapshot.
func (h *Handler) StatsSnapshot(w http.ResponseWriter, r *http.Request) {
	reader, ok := h.Stats.(domain.StatsReader)
	if !ok || h.Stats == nil {
		writeError(w, http.StatusServiceUnavailable, "stats disabled")
		return
	}

	snap, err := reader.Snapshot(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("stats snapshot failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func recordStats(ctx context.Context, stats domain.StatsStore, ev domain.StatsEvent) {
	if stats == nil {
		return
	}
	if err := stats.Record(ctx, ev); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("outcome", string(ev.Outcome)).Msg("stats record failed")
	}
}
