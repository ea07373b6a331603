package service

import (
	"errors"
	"fmt"
)

var (
	ErrZeroTerm     = errors.New("división por cero: el plazo debe ser mayor a cero")
	ErrMissingField = errors.New("campo requerido ausente")
	ErrOutOfRange   = errors.New("resultado fuera de rango")
)

// ValidationError names the first form field that failed its format check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnexpectedError covers every failure that is not a field format problem.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("Error inesperado: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

func missingField(field string) error {
	return &UnexpectedError{Err: fmt.Errorf("%w: %s", ErrMissingField, field)}
}
