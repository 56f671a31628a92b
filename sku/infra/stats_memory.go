package infra

import (
	"context"
	"sync"

	"sku-gateway/sku/domain"
)

// MemoryStatsStore guarda os contadores em memória do processo.
//
// Não faz expiração; zera quando o processo reinicia.
type MemoryStatsStore struct {
	mu       sync.Mutex
	total    map[domain.Outcome]int64
	byPrefix map[string]int64
	byKey    map[string]int64

	trackKeys bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackKeys(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackKeys = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		total:    make(map[domain.Outcome]int64),
		byPrefix: make(map[string]int64),
		byKey:    make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total[ev.Outcome]++
	if ev.Outcome == domain.OutcomeGenerated && ev.Prefix != "" {
		s.byPrefix[ev.Prefix]++
	}
	if s.trackKeys && ev.Key != "" {
		s.byKey[string(ev.Key)]++
	}
	return nil
}

func (s *MemoryStatsStore) Snapshot(_ context.Context) (domain.StatsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.StatsSnapshot{
		Total:    make(map[domain.Outcome]int64, len(domain.Outcomes)),
		ByPrefix: make(map[string]int64, len(s.byPrefix)),
	}
	for _, o := range domain.Outcomes {
		snap.Total[o] = s.total[o]
	}
	for k, v := range s.byPrefix {
		snap.ByPrefix[k] = v
	}
	if s.trackKeys {
		snap.ByKey = make(map[string]int64, len(s.byKey))
		for k, v := range s.byKey {
			snap.ByKey[k] = v
		}
	}
	return snap, nil
}
