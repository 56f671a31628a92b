// Package sku é o adapter HTTP (net/http + chi) do gerador de SKU.
//
// Visão geral (camadas):
//
//   - domain: tipos, extrator de dígitos, tabela duty/fabricante (sem net/http)
//   - application: casos de uso (gerar SKU, decisão de rate limit, vaga de concorrência)
//   - infra: implementações concretas (token bucket, semáforo, stats em memória/Redis)
//   - sku (este pacote): rotas, decodificação do JSON, middlewares e tradução
//     de erros para status HTTP
//
// Fluxo de POST /sku:
//
//  1. Atribui X-Request-Id e extrai a chave do cliente (IP/header/XFF)
//  2. Rate limit por cliente (429) e limite de concorrência (503)
//  3. Decodifica o corpo para domain.Request aplicando os defaults
//  4. Chama application.Generator e responde o JSON do SKU
//  5. ValidationError vira 400, qualquer outra falha vira 500
//
// As variáveis de ambiente do binário cmd/sku-server controlam o comportamento.
package sku
