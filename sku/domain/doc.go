// Package domain define os tipos e as regras puras da geração de SKU.
//
// Aqui vivem o extrator de dígitos, a tabela de classificação duty/fabricante
// e os contratos usados pelas outras camadas (stats, limiter, pool de vagas).
// Este pacote não depende de net/http nem de implementações concretas.
package domain
