package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrTransient          = errors.New("persistencia no disponible, reintentar")
	ErrInconsistent       = errors.New("libro y diario de movimientos inconsistentes")
)

// ValidationError señala el campo requerido o malformado de la petición.
// Unwrap a ErrInvalidInput para que los handlers sigan usando errors.Is.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo requerido o inválido: %s", e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError lleva SKU, disponible y solicitado para que el
// mensaje al usuario indique el faltante exacto.
type InsufficientStockError struct {
	SKU       string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d", e.SKU, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
