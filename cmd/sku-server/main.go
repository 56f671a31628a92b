package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sku-gateway/sku"
	"sku-gateway/sku/application"
	"sku-gateway/sku/domain"
	"sku-gateway/sku/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var version = sku.DefaultVersion

func main() {
	cfg, err := readConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}
	setupLogger(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var stats domain.StatsStore
	switch cfg.statsBackend {
	case statsBackendMemory:
		stats = infra.NewMemoryStatsStore(infra.WithTrackKeys(cfg.statsTrackKeys))
	case statsBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		pingCancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.statsRedisAddr).Msg("redis stats ping error")
		}

		stats = infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackKeys(cfg.statsTrackKeys),
		)
	}

	opts := sku.Options{
		Generator:           application.Generator{},
		Stats:               stats,
		Logger:              &log.Logger,
		Version:             version,
		KeyHeader:           cfg.rateKeyHeader,
		TrustXForwardedFor:  cfg.trustXFF,
		RetryAfter:          cfg.retryAfter,
		AddRateLimitHeaders: cfg.addHeaders,
		ConcurrencyMax:      cfg.concurrencyMax,
		AcquireTimeout:      cfg.concurrencyTimeout,
	}
	if cfg.rateEnabled {
		limiters := infra.NewLimiterStore(cfg.rateRPS, cfg.rateBurst)
		limiters.StartJanitor(ctx)
		opts.Limiter = limiters
	}

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           sku.NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown error")
		}
	}()

	log.Info().
		Str("addr", cfg.listenAddr).
		Str("version", version).
		Msg("sku generator listening")
	log.Info().
		Bool("enabled", cfg.rateEnabled).
		Float64("rps", cfg.rateRPS).
		Int("burst", cfg.rateBurst).
		Str("key_header", cfg.rateKeyHeader).
		Bool("trust_xff", cfg.trustXFF).
		Msg("rate limit")
	log.Info().
		Int("max", cfg.concurrencyMax).
		Dur("acquire_timeout", cfg.concurrencyTimeout).
		Msg("concurrency")
	log.Info().
		Str("backend", cfg.statsBackend).
		Str("redis_addr", cfg.statsRedisAddr).
		Str("bucket", cfg.statsBucket).
		Dur("ttl", cfg.statsTTL).
		Bool("track_keys", cfg.statsTrackKeys).
		Msg("stats")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

func setupLogger(cfg config) {
	level, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.logFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
