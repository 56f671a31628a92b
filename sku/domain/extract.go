package domain

import "strings"

const digitCount = 4

// ExtractLast4Digits devolve os últimos 4 dígitos de code.
//
// Só os dígitos ASCII são considerados, na ordem em que aparecem. Com menos de
// 4 dígitos o resultado é completado com zeros à esquerda ("AB7" -> "0007").
// O retorno tem sempre 4 caracteres.
func ExtractLast4Digits(code string) string {
	if code == "" {
		return strings.Repeat("0", digitCount)
	}

	digits := make([]byte, 0, len(code))
	for i := 0; i < len(code); i++ {
		if c := code[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}

	if len(digits) >= digitCount {
		return string(digits[len(digits)-digitCount:])
	}
	return strings.Repeat("0", digitCount-len(digits)) + string(digits)
}
