package domain

import (
	"context"
	"time"
)

// Outcome é o desfecho de uma requisição ao gerador.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeRejected  Outcome = "rejected"
	OutcomeFailed    Outcome = "failed"
	OutcomeThrottled Outcome = "throttled"
	OutcomeBusy      Outcome = "busy"
)

// Outcomes lista os desfechos na ordem em que aparecem no snapshot.
var Outcomes = []Outcome{OutcomeGenerated, OutcomeRejected, OutcomeFailed, OutcomeThrottled, OutcomeBusy}

// StatsEvent registra um desfecho. Prefix só é preenchido quando um SKU foi gerado.
//
// Os SKUs em si não são guardados, apenas contadores.
type StatsEvent struct {
	Key     Key
	Outcome Outcome
	Prefix  string

	At time.Time
}

// StatsStore persiste contadores de desfecho.
// Quem chama trata erro como best-effort (não derruba request).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}

// StatsSnapshot é a leitura consolidada dos contadores.
type StatsSnapshot struct {
	Total    map[Outcome]int64 `json:"total"`
	ByPrefix map[string]int64  `json:"by_prefix"`
	ByKey    map[string]int64  `json:"by_key,omitempty"`
}

// StatsReader é implementado pelos stores que conseguem devolver um snapshot.
type StatsReader interface {
	Snapshot(ctx context.Context) (StatsSnapshot, error)
}
