package domain

import "strings"

const (
	PrefixHeavy      = "EL"
	PrefixLightFram  = "EH"
	PrefixLight      = "EM"
	PrefixUnknown    = "EL"
	ManufacturerOEM  = "OEM"
	ManufacturerDON  = "DONALDSON"
	ManufacturerFRAM = "FRAM"
	Unknown          = "UNKNOWN"
)

var (
	heavyDuties = map[string]struct{}{"HD": {}, "DIESEL": {}, "HEAVY DUTY": {}}
	lightDuties = map[string]struct{}{"LD": {}, "GASOLINA": {}, "LIGHT DUTY": {}}
)

// Classification é o resultado da tabela duty/fabricante.
type Classification struct {
	Prefix       string
	Duty         string
	Manufacturer string
}

// Classify aplica a tabela de decisão sobre duty e fabricante em maiúsculas.
//
// Ordem das regras (a primeira que casar vence):
//
//   - duty pesado (HD, DIESEL, HEAVY DUTY): EL, DONALDSON ou OEM
//   - duty leve (LD, GASOLINA, LIGHT DUTY): EH para FRAM, senão EM com OEM
//   - qualquer outro duty: EL com duty e fabricante UNKNOWN
func Classify(duty, manufacturer string) Classification {
	duty = strings.ToUpper(duty)
	manufacturer = strings.ToUpper(manufacturer)

	if _, ok := heavyDuties[duty]; ok {
		if manufacturer == ManufacturerDON {
			return Classification{Prefix: PrefixHeavy, Duty: duty, Manufacturer: ManufacturerDON}
		}
		return Classification{Prefix: PrefixHeavy, Duty: duty, Manufacturer: ManufacturerOEM}
	}

	if _, ok := lightDuties[duty]; ok {
		if manufacturer == ManufacturerFRAM {
			return Classification{Prefix: PrefixLightFram, Duty: duty, Manufacturer: ManufacturerFRAM}
		}
		return Classification{Prefix: PrefixLight, Duty: duty, Manufacturer: ManufacturerOEM}
	}

	return Classification{Prefix: PrefixUnknown, Duty: Unknown, Manufacturer: Unknown}
}
