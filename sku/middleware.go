package sku

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"sku-gateway/sku/domain"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-Id"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	clientKeyKey
)

// RequestID reaproveita o X-Request-Id recebido ou gera um UUID, devolve no
// response e injeta no ctx um logger com request_id.
func RequestID(base zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			logger := base.With().Str("request_id", id).Logger()
			ctx := context.WithValue(r.Context(), requestIDKey, id)
			ctx = logger.WithContext(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFrom devolve o id atribuído pelo middleware RequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ClientKey extrai a chave do cliente uma vez e guarda no ctx.
func ClientKey(fn KeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := domain.Key(fn(r))
			ctx := context.WithValue(r.Context(), clientKeyKey, key)
			ctx = zerolog.Ctx(ctx).With().Str("client", string(key)).Logger().WithContext(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientKeyFrom(ctx context.Context) (domain.Key, bool) {
	k, ok := ctx.Value(clientKeyKey).(domain.Key)
	return k, ok
}

// AccessLog escreve uma linha por request com status, bytes e duração.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logger := zerolog.Ctx(r.Context())
		ev := logger.Info()
		if status >= http.StatusInternalServerError {
			ev = logger.Error()
		} else if status >= http.StatusBadRequest {
			ev = logger.Warn()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Recoverer transforma panic fora do handler de SKU em 500 com o envelope JSON.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := &domain.InternalError{Err: fmt.Errorf("%v", rec)}
			zerolog.Ctx(r.Context()).Error().
				Err(err).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")
			writeError(w, http.StatusInternalServerError, err.Error())
		}()

		next.ServeHTTP(w, r)
	})
}
