package application

import (
	"context"
	"time"

	"sku-gateway/sku/domain"
)

// Admission limita quantas gerações rodam ao mesmo tempo.
type Admission struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire tenta reservar uma vaga.
// Com AcquireTimeout <= 0 espera até o ctx cancelar; senão desiste no timeout.
// Se ok=false, nenhuma vaga foi reservada.
func (a Admission) Acquire(ctx context.Context) (func(), bool) {
	if a.Pool == nil {
		return func() {}, true
	}
	if a.AcquireTimeout <= 0 {
		return a.Pool.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, a.AcquireTimeout)
	defer cancel()
	return a.Pool.Acquire(acqCtx)
}
