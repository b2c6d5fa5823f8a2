package wishlist

import (
	"errors"
	"strings"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrMissingFields  = errors.New("missing required fields")
	ErrValorNotNumber = errors.New("valor is not a number")
	ErrValorNegative  = errors.New("valor is negative")
	ErrEmptyUpdate    = errors.New("no fields to update")
	ErrNotFound       = errors.New("item not found")

	// ErrRepository oculta cualquier falla del backend (conexión, constraint, timeout).
	// El detalle queda en los logs.
	ErrRepository = errors.New("repository failure")
)

// MissingFieldsError lista los campos obligatorios ausentes, en el orden en que se chequean.
type MissingFieldsError struct {
	Fields []string
}

func (err *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(err.Fields, ", ")
}

func (err *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}
