package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cotizador/internal/document"
	"cotizador/internal/domain"
	"cotizador/internal/service"
)

const maxFormBytes = 64 << 10

var quotationFields = []string{
	domain.FieldClientName,
	domain.FieldSellerName,
	domain.FieldPropertyValue,
	domain.FieldDownPayment,
	domain.FieldMonthlyRate,
	domain.FieldTermMonths,
}

var formFields = append(append([]string{}, quotationFields...), domain.FieldFormat)

// formValues is the submitted text, echoed back into the page on errors.
type formValues map[string]string

func (v formValues) request() domain.QuotationRequest {
	present := make(map[string]bool, len(quotationFields))
	for _, f := range quotationFields {
		if _, ok := v[f]; ok {
			present[f] = true
		}
	}
	return domain.QuotationRequest{
		ClientName:    v[domain.FieldClientName],
		SellerName:    v[domain.FieldSellerName],
		PropertyValue: v[domain.FieldPropertyValue],
		DownPayment:   v[domain.FieldDownPayment],
		MonthlyRate:   v[domain.FieldMonthlyRate],
		TermMonths:    v[domain.FieldTermMonths],
		Present:       present,
	}
}

func (v formValues) format() document.Format {
	return document.Format(strings.ToLower(strings.TrimSpace(v[domain.FieldFormat])))
}

// parseQuotationForm reads an urlencoded submission. Only fields that were
// actually posted end up in the result.
func parseQuotationForm(w http.ResponseWriter, r *http.Request) (formValues, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return formValues{}, &service.UnexpectedError{Err: fmt.Errorf("formulario inválido: %w", err)}
	}

	values := formValues{}
	for _, f := range formFields {
		if vs, ok := r.PostForm[f]; ok && len(vs) > 0 {
			values[f] = vs[0]
		}
	}
	return values, nil
}

// parseQuotationJSON accepts the same keys as the form; numbers may be sent
// as JSON numbers or strings. Numbers keep their literal text so large
// amounts are validated exactly as sent.
func parseQuotationJSON(r *http.Request) (formValues, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxFormBytes))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, &service.UnexpectedError{Err: fmt.Errorf("JSON inválido: %w", err)}
	}

	values := formValues{}
	for _, f := range quotationFields {
		v, ok := raw[f]
		if !ok || v == nil {
			continue
		}
		s, err := toText(v)
		if err != nil {
			return nil, &service.ValidationError{Field: f, Message: fmt.Sprintf("%s debe ser texto o número", f)}
		}
		values[f] = s
	}
	return values, nil
}

func toText(v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("invalid type %T", v)
	}
}
