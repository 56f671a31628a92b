package domain

import (
	"sort"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultDuty         = "HD"
	DefaultManufacturer = "OEM"

	// SKULength é o tamanho que o campo VALIDO confere.
	//
	// Observação: prefixo (2) + dígitos (4) sempre dá 6, então VALIDO sai
	// sempre false. A regra foi mantida como está até alguém do negócio
	// confirmar qual era a intenção (prefixo de 4 ou 6 dígitos).
	SKULength = 8

	// TimestampLayout é ISO-8601 em UTC com microssegundos e sem sufixo de zona.
	TimestampLayout = "2006-01-02T15:04:05.000000"

	msgOEMRequired = "oem_code is required"
)

// Request é a entrada do gerador, já com os defaults aplicados.
type Request struct {
	OEMCode      string `json:"oem_code"`
	Duty         string `json:"duty"`
	Manufacturer string `json:"fabricante"`
}

// NewRequest aplica os defaults de duty/fabricante somente quando o valor
// está ausente (nil). String vazia presente é mantida.
func NewRequest(oemCode string, duty, manufacturer *string) Request {
	r := Request{
		OEMCode:      oemCode,
		Duty:         DefaultDuty,
		Manufacturer: DefaultManufacturer,
	}
	if duty != nil {
		r.Duty = *duty
	}
	if manufacturer != nil {
		r.Manufacturer = *manufacturer
	}
	return r
}

// Validate confere apenas a presença do código OEM.
func (r Request) Validate() error {
	err := v.ValidateStruct(&r,
		v.Field(&r.OEMCode, v.Required.Error(msgOEMRequired)),
	)
	if err == nil {
		return nil
	}

	reason := err.Error()
	if fields, ok := err.(v.Errors); ok {
		reason = firstFieldError(fields)
	}
	return &ValidationError{Reason: reason, Err: err}
}

func firstFieldError(errs v.Errors) string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if e := errs[name]; e != nil {
			return e.Error()
		}
	}
	return errs.Error()
}

// Result é o SKU gerado e os componentes que o formaram.
type Result struct {
	SKU          string
	Prefix       string
	Digits       string
	OEMCode      string
	Duty         string
	Manufacturer string
	Timestamp    string
	Valid        bool
}
