package domain

import "time"

// Key identifica o cliente para o rate limit (IP, API key, etc).
type Key string

// Limiter decide se uma requisição pode passar agora.
type Limiter interface {
	Allow() bool
}

// LimiterStore obtém um limiter por chave.
// A implementação pode manter cache, TTL, etc.
type LimiterStore interface {
	Get(Key) Limiter
}

type Decision struct {
	Allowed bool
	// RetryAfter é o valor do header Retry-After quando bloquear.
	RetryAfter time.Duration
}
