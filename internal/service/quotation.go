package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"cotizador/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const timestampLayout = "02/01/2006 15:04:05"

type QuotationService struct {
	now   func() time.Time
	newID func() string
}

func NewQuotationService() *QuotationService {
	return &QuotationService{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Quote validates the raw form fields and computes the flat-interest
// monthly payment. It returns a *ValidationError for the first malformed
// field and an *UnexpectedError for anything else; never a partial result.
func (s *QuotationService) Quote(ctx context.Context, req domain.QuotationRequest) (*domain.Quotation, error) {
	logger := zerolog.Ctx(ctx)

	client, err := requireName(req, domain.FieldClientName, req.ClientName, "cliente")
	if err != nil {
		return nil, err
	}
	seller, err := requireName(req, domain.FieldSellerName, req.SellerName, "vendedor")
	if err != nil {
		return nil, err
	}

	if !req.Has(domain.FieldPropertyValue) {
		return nil, missingField(domain.FieldPropertyValue)
	}
	propertyValue, ok := parseAmount(req.PropertyValue)
	if !ok {
		return nil, &ValidationError{Field: domain.FieldPropertyValue, Message: "El valor de la propiedad no es un número válido."}
	}

	if !req.Has(domain.FieldDownPayment) {
		return nil, missingField(domain.FieldDownPayment)
	}
	downPayment, ok := parseAmount(req.DownPayment)
	if !ok {
		return nil, &ValidationError{Field: domain.FieldDownPayment, Message: "El pie no es un número válido."}
	}

	if !req.Has(domain.FieldMonthlyRate) {
		return nil, missingField(domain.FieldMonthlyRate)
	}
	rate, ok := parseRate(req.MonthlyRate)
	if !ok {
		return nil, &ValidationError{Field: domain.FieldMonthlyRate, Message: "La tasa de interés no es un número válido."}
	}

	if !req.Has(domain.FieldTermMonths) {
		return nil, missingField(domain.FieldTermMonths)
	}
	term, ok := parseTerm(req.TermMonths)
	if !ok {
		return nil, &ValidationError{Field: domain.FieldTermMonths, Message: "El plazo no es un número válido."}
	}

	remaining, monthly, err := MonthlyPayment(propertyValue, downPayment, rate, term)
	if err != nil {
		return nil, &UnexpectedError{Err: err}
	}

	q := &domain.Quotation{
		ID:               s.newID(),
		ClientName:       client,
		SellerName:       seller,
		PropertyValue:    propertyValue.IntPart(),
		DownPayment:      downPayment.IntPart(),
		MonthlyRate:      rate.InexactFloat64(),
		TermMonths:       int(term),
		GeneratedAt:      s.now().Format(timestampLayout),
		RemainingBalance: remaining,
		MonthlyPayment:   monthly,
	}

	logger.Debug().
		Str("quotation_id", q.ID).
		Int64("remaining_balance", q.RemainingBalance).
		Int64("monthly_payment", q.MonthlyPayment).
		Msg("quotation computed")

	return q, nil
}

// MonthlyPayment applies the flat-interest formula
//
//	remaining = value - down
//	monthly   = (remaining + remaining*rate/100*term) / term
//
// truncating both results toward zero.
func MonthlyPayment(value, down, rate decimal.Decimal, term int64) (remaining, monthly int64, err error) {
	if term == 0 {
		return 0, 0, ErrZeroTerm
	}

	balance := value.Sub(down)
	months := decimal.NewFromInt(term)
	interest := balance.Mul(rate.Shift(-2)).Mul(months)
	total := balance.Add(interest)

	q, _ := total.QuoRem(months, 0)
	if q.Abs().GreaterThan(maxInt64) {
		return 0, 0, fmt.Errorf("cuota mensual: %w", ErrOutOfRange)
	}

	return balance.IntPart(), q.IntPart(), nil
}

func requireName(req domain.QuotationRequest, field, raw, label string) (string, error) {
	if !req.Has(field) {
		return "", missingField(field)
	}
	name := sanitizeName(raw)
	if name == "" {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("El nombre del %s es obligatorio.", label)}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("El nombre del %s no puede superar %d caracteres.", label, maxNameLength),
		}
	}
	return name, nil
}
