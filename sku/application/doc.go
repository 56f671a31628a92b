// Package application contém os casos de uso do serviço de SKU.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Generator.Generate(req) monta o SKU; Throttle.Decide(key) retorna uma
// Decision (allow/deny + retry-after); Admission.Acquire reserva uma vaga.
package application
