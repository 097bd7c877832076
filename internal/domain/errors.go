package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los errores tipados de abajo envuelven estos sentinelas para que errors.Is funcione en los handlers.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStorage           = errors.New("error de almacenamiento")
	ErrLockNotAcquired   = errors.New("lote bloqueado por otra operación")
)

// ValidationError campo requerido ausente o con formato inválido.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError el ítem o lote referenciado no existe.
type NotFoundError struct {
	Resource string // item, batch, stock_in, disposal, adjustment
	Message  string
}

func (e *NotFoundError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound construye un NotFoundError con mensaje visible para el usuario.
func NewNotFound(resource, message string) error {
	return &NotFoundError{Resource: resource, Message: message}
}

// DuplicateError el recurso ya existe (p. ej. batch_id repetido).
type DuplicateError struct {
	Resource string
	Message  string
}

func (e *DuplicateError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrDuplicate).
func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// InsufficientStockError la cantidad solicitada supera el stock restante del lote.
// Lleva ambas cantidades para que el cliente pueda mostrarlas tal cual.
type InsufficientStockError struct {
	Requested int64
	Remaining int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Disposal quantity is greater than the selected batch's stock (Disposal Quantity: %d, Remaining Stock: %d)",
		e.Requested, e.Remaining)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// StorageError fallo de lectura/escritura en la base de datos (conectividad, timeout, etc.).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStorage).
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// WrapStorage envuelve un error del driver; nil y los errores de dominio se devuelven tal cual.
func WrapStorage(op string, err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsDomainError indica si err ya pertenece a la taxonomía del dominio.
func IsDomainError(err error) bool {
	for _, target := range []error{ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnauthorized, ErrInsufficientStock, ErrStorage, ErrLockNotAcquired} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
