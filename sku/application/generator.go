package application

import (
	"time"

	"sku-gateway/sku/domain"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Generator monta o SKU a partir do código OEM, duty e fabricante.
//
// Não guarda estado entre chamadas; pode ser usado por várias goroutines.
type Generator struct {
	Clock domain.Clock
}

// Generate valida o request, classifica, extrai os dígitos e monta o Result.
// O único erro possível é *domain.ValidationError.
func (g Generator) Generate(req domain.Request) (domain.Result, error) {
	if err := req.Validate(); err != nil {
		return domain.Result{}, err
	}

	clock := g.Clock
	if clock == nil {
		clock = systemClock{}
	}

	cls := domain.Classify(req.Duty, req.Manufacturer)
	digits := domain.ExtractLast4Digits(req.OEMCode)
	sku := cls.Prefix + digits

	return domain.Result{
		SKU:          sku,
		Prefix:       cls.Prefix,
		Digits:       digits,
		OEMCode:      req.OEMCode,
		Duty:         cls.Duty,
		Manufacturer: cls.Manufacturer,
		Timestamp:    clock.Now().UTC().Format(domain.TimestampLayout),
		Valid:        len(sku) == domain.SKULength,
	}, nil
}
