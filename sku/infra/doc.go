// Package infra contém implementações concretas para os contratos do pacote domain.
//
//   - LimiterStore: token bucket por cliente usando golang.org/x/time/rate
//   - Semaphore: semáforo em channel para o limite de concorrência
//   - MemoryStatsStore / RedisStatsStore: contadores de desfecho das gerações
package infra
