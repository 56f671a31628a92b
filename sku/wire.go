package sku

import (
	"encoding/json"
	"net/http"

	"sku-gateway/sku/domain"
)

const (
	statusSuccess = "success"
	statusError   = "error"
	statusOK      = "ok"
)

// SKUResponse é o JSON de sucesso de POST /sku.
type SKUResponse struct {
	SKU          string `json:"SKU"`
	Prefix       string `json:"SKU_PREFIJO"`
	Digits       string `json:"SKU_DIGITOS"`
	OEMCode      string `json:"OEM_CODE"`
	Duty         string `json:"DUTY"`
	Manufacturer string `json:"FABRICANTE"`
	Timestamp    string `json:"TIMESTAMP"`
	Valid        bool   `json:"VALIDO"`
	Status       string `json:"status"`
}

// NewSKUResponse converte o Result para o formato de saída (também usado pelo CLI).
func NewSKUResponse(res domain.Result) SKUResponse {
	return SKUResponse{
		SKU:          res.SKU,
		Prefix:       res.Prefix,
		Digits:       res.Digits,
		OEMCode:      res.OEMCode,
		Duty:         res.Duty,
		Manufacturer: res.Manufacturer,
		Timestamp:    res.Timestamp,
		Valid:        res.Valid,
		Status:       statusSuccess,
	}
}

// ErrorResponse é o envelope de erro de todas as rotas.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// NewErrorResponse monta o envelope {error, status="error"}.
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Error: msg, Status: statusError}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type indexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Example   indexExample      `json:"example"`
}

type indexExample struct {
	URL  string            `json:"url"`
	Body map[string]string `json:"body"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, NewErrorResponse(msg))
}
