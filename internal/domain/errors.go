package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrQuotationExpired   = errors.New("la cotización está expirada")
)

// InsufficientStockError detalla un faltante de stock en un punto de inventario.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando.
type InsufficientStockError struct {
	ProductID        int64
	ProductName      string
	InventoryPointID int64
	Available        int64
	Required         int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q (producto %d) en punto %d: disponible %d, requerido %d",
		e.ProductName, e.ProductID, e.InventoryPointID, e.Available, e.Required)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError es un error de validación con su origen (TCs, Client Info, Line Items, etc.).
type ValidationError struct {
	Origin  string
	Message string
}

// ValidationErrors agrupa los errores de validación recogidos antes de cualquier mutación.
// Envuelve ErrInvalidInput.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Origin+": "+v.Message)
	}
	return strings.Join(msgs, " & ")
}

func (e ValidationErrors) Unwrap() error { return ErrInvalidInput }
