package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio del ledger (sin dependencias de infraestructura).
var (
	ErrValidation             = errors.New("entrada inválida")
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInsufficientFunds      = errors.New("fondos insuficientes")
	ErrRejectedQuantity       = errors.New("cantidad a devolver rechazada")
	ErrDuplicateReference     = errors.New("referencia duplicada para el tercero")
	ErrInvalidState           = errors.New("operación no permitida en el estado actual")
	ErrIntegrity              = errors.New("falla de integridad interna")
	ErrInvalidTransactionType = errors.New("tipo de transacción de caja inválido")
	ErrSameBoxTransfer        = errors.New("no se puede transferir a la misma caja")
)

// Kind clasifica un error para exponerlo como tipo estructurado + mensaje.
type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindNotFound           Kind = "NOT_FOUND"
	KindInsufficientFunds  Kind = "INSUFFICIENT_FUNDS"
	KindRejectedQuantity   Kind = "REJECTED_QUANTITY"
	KindDuplicateReference Kind = "DUPLICATE_REFERENCE"
	KindInvalidState       Kind = "INVALID_STATE"
	KindIntegrity          Kind = "INTEGRITY_FAILURE"
)

// KindOf devuelve el Kind de err. Cualquier error no clasificado es una falla de integridad.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidTransactionType),
		errors.Is(err, ErrSameBoxTransfer):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrRejectedQuantity):
		return KindRejectedQuantity
	case errors.Is(err, ErrDuplicateReference):
		return KindDuplicateReference
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	default:
		return KindIntegrity
	}
}

// Validation envuelve ErrValidation con el detalle del campo.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound indicando la entidad y el id.
func NotFound(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// Integrity envuelve un error inesperado ocurrido a mitad de una transacción.
// Los errores de dominio ya clasificados se devuelven sin cambios.
func Integrity(err error) error {
	if err == nil || KindOf(err) != KindIntegrity || errors.Is(err, ErrIntegrity) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrIntegrity, err)
}

// InsufficientFundsError se produce cuando un débito dejaría la caja en negativo.
type InsufficientFundsError struct {
	BoxID     string
	BoxName   string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("fondos insuficientes en la caja %q: disponible %s, requerido %s",
		e.BoxName, e.Available.StringFixed(2), e.Required.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// RejectedQuantityError se produce cuando se intenta devolver más de lo pendiente en una línea.
type RejectedQuantityError struct {
	LineItemID string
	Requested  decimal.Decimal
	Available  decimal.Decimal
}

func (e *RejectedQuantityError) Error() string {
	return fmt.Sprintf("línea %s: se solicitaron %s unidades, solo %s disponibles para devolución",
		e.LineItemID, e.Requested.String(), e.Available.String())
}

func (e *RejectedQuantityError) Unwrap() error { return ErrRejectedQuantity }
