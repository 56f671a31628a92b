package infra

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sku-gateway/sku/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava os contadores em hashes do Redis:
//
//	<prefix>:total            outcome -> n (cumulativo, não expira)
//	<prefix>:minute:<yyyymmddhhmm> outcome -> n (expira em ttl)
//	<prefix>:sku_prefix       EL/EH/EM -> n
//	<prefix>:key:<cliente>    outcome -> n (só com trackKeys, expira em ttl)
type RedisStatsStore struct {
	rdb redis.Cmdable

	prefix string
	ttl    time.Duration
	bucket string // "minute" (padrão) ou "none"

	trackKeys bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackKeys(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackKeys = track }
}

func NewRedisStatsStore(rdb redis.Cmdable, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "sku:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) totalKey() string  { return s.prefix + ":total" }
func (s *RedisStatsStore) prefixKey() string { return s.prefix + ":sku_prefix" }

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := string(ev.Outcome)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.totalKey(), field, 1)

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if ev.Outcome == domain.OutcomeGenerated && ev.Prefix != "" {
		pipe.HIncrBy(ctx, s.prefixKey(), ev.Prefix, 1)
	}

	if s.trackKeys {
		if k := strings.TrimSpace(string(ev.Key)); k != "" {
			keyKey := s.prefix + ":key:" + k
			pipe.HIncrBy(ctx, keyKey, field, 1)
			if s.ttl > 0 {
				pipe.Expire(ctx, keyKey, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Snapshot lê os totais e a contagem por prefixo. Contadores por cliente não
// entram (exigiria SCAN em todas as chaves).
func (s *RedisStatsStore) Snapshot(ctx context.Context) (domain.StatsSnapshot, error) {
	snap := domain.StatsSnapshot{
		Total:    make(map[domain.Outcome]int64, len(domain.Outcomes)),
		ByPrefix: make(map[string]int64),
	}
	if s == nil || s.rdb == nil {
		return snap, nil
	}

	pipe := s.rdb.Pipeline()
	totalCmd := pipe.HGetAll(ctx, s.totalKey())
	prefixCmd := pipe.HGetAll(ctx, s.prefixKey())
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return domain.StatsSnapshot{}, err
	}

	total, err := parseCounters(totalCmd.Val())
	if err != nil {
		return domain.StatsSnapshot{}, err
	}
	for _, o := range domain.Outcomes {
		snap.Total[o] = total[string(o)]
	}

	byPrefix, err := parseCounters(prefixCmd.Val())
	if err != nil {
		return domain.StatsSnapshot{}, err
	}
	snap.ByPrefix = byPrefix
	return snap, nil
}

func parseCounters(raw map[string]string) (map[string]int64, error) {
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stats counter %q: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}
