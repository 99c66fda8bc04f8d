package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrContention    = errors.New("recurso bloqueado por otra operación, reintente")

	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor que cero")
	ErrEmptyOrder         = errors.New("el pedido no tiene líneas")
	ErrOrderNotEditable   = errors.New("el pedido ya no admite cambios en sus líneas")
	ErrOrderNotReceivable = errors.New("el pedido no admite recepciones en su estado actual")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrOverReceipt        = errors.New("la cantidad recibida supera la pendiente")
	ErrLocationRequired   = errors.New("se requiere ubicación para la primera recepción del repuesto en la sede")
)

// ErrPartUnresolved: la línea aún no tiene repuesto asignado (referencia pendiente).
// Coincide también con ErrNotFound.
var ErrPartUnresolved = fmt.Errorf("línea sin repuesto asignado: %w", ErrNotFound)

// OverReceiptError identifica la línea que excede su cantidad pendiente.
type OverReceiptError struct {
	OrderItemID string
	Requested   int
	Remaining   int
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("línea %s: se intentó recibir %d y solo quedan %d pendientes",
		e.OrderItemID, e.Requested, e.Remaining)
}

// Is permite errors.Is(err, ErrOverReceipt).
func (e *OverReceiptError) Is(target error) bool {
	return target == ErrOverReceipt
}

// LineError asocia un error de validación a una línea concreta de la recepción.
type LineError struct {
	Index       int
	OrderItemID string
	Err         error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("línea %d (%s): %v", e.Index+1, e.OrderItemID, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
