package sku

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"sku-gateway/sku/domain"
)

const maxBodyBytes = 64 << 10

var errNoData = &domain.ValidationError{Reason: "No JSON data provided"}

// decodeRequest lê o corpo como objeto JSON e monta o domain.Request.
//
// Corpo vazio, null ou {} contam como "sem dados". duty e fabricante só
// recebem default quando ausentes ou null.
func decodeRequest(r *http.Request) (domain.Request, error) {
	if r.Body == nil {
		return domain.Request{}, errNoData
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return domain.Request{}, invalidBody(err)
	}
	if len(body) > maxBodyBytes {
		return domain.Request{}, &domain.ValidationError{Reason: "request body too large"}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.Request{}, errNoData
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.Request{}, invalidBody(err)
	}
	if len(fields) == 0 {
		return domain.Request{}, errNoData
	}

	oemCode, err := oemCodeField(fields["oem_code"])
	if err != nil {
		return domain.Request{}, err
	}
	duty, err := stringField(fields, "duty")
	if err != nil {
		return domain.Request{}, err
	}
	manufacturer, err := stringField(fields, "fabricante")
	if err != nil {
		return domain.Request{}, err
	}
	if manufacturer == nil {
		if manufacturer, err = stringField(fields, "manufacturer"); err != nil {
			return domain.Request{}, err
		}
	}

	return domain.NewRequest(oemCode, duty, manufacturer), nil
}

func invalidBody(err error) error {
	return &domain.ValidationError{Reason: "invalid JSON body", Err: err}
}

// oemCodeField aceita string ou número; o número é mantido como foi enviado.
func oemCodeField(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", invalidBody(err)
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", &domain.ValidationError{Reason: "oem_code must be a string"}
	}
}

func stringField(fields map[string]json.RawMessage, name string) (*string, error) {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &domain.ValidationError{Reason: name + " must be a string", Err: err}
		}
		return nil, invalidBody(err)
	}
	return &s, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
