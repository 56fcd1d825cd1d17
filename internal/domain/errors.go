package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). El normalizador de errores
// HTTP es el único componente que los traduce a mensajes visibles al cliente.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrHashing            = errors.New("fallo en el primitivo de hashing")
	ErrTokenInvalid       = errors.New("token inválido")
	ErrTokenExpired       = errors.New("token expirado")
)

// FieldViolation describe una restricción violada en un campo concreto.
type FieldViolation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

func (v FieldViolation) String() string {
	return v.Field + ": " + v.Constraint
}

// ValidationError agrupa todas las violaciones de un payload. Se construye una
// sola vez en el validador del borde; ningún componente posterior re-valida.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("entrada inválida: %s", strings.Join(parts, "; "))
}

// NewValidationError construye un ValidationError con las violaciones dadas.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}
