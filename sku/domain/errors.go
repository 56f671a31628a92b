package domain

// ValidationError indica erro causado pelo cliente (corpo ausente/inválido ou
// oem_code vazio). Vira 400 na borda HTTP.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "validation error"
}

func (e *ValidationError) Unwrap() error { return e.Err }

// InternalError é qualquer falha inesperada no processamento. Vira 500.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return "internal error"
	}
	return e.Err.Error()
}

func (e *InternalError) Unwrap() error { return e.Err }
