package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	// ErrStorage fallo del almacenamiento; la transacción se revirtió completa.
	ErrStorage = errors.New("error de almacenamiento")
	// ErrCommit se combina con ErrStorage cuando el fallo ocurre al confirmar.
	ErrCommit = errors.New("no se pudo confirmar la transacción")
)

// ValidationError indica qué campo de la entrada es inválido. Envuelve ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Kind clasifica un error para decidir el código de respuesta.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindReferential
	KindPolicy
	KindConflict
	KindAuth
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindReferential:
		return "referential"
	case KindPolicy:
		return "policy"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// KindOf devuelve la clase del error. Un error sin clasificar se trata como KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return KindReferential
	case errors.Is(err, ErrInsufficientStock):
		return KindPolicy
	case errors.Is(err, ErrDuplicate):
		return KindConflict
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden), errors.Is(err, ErrInvalidCredentials):
		return KindAuth
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindUnknown
	}
}

// Classified indica si err ya pertenece a una clase conocida.
func Classified(err error) bool {
	return KindOf(err) != KindUnknown
}

// StorageError marca err como fallo de almacenamiento, salvo que ya tenga una clase conocida
// (validación, referencia o política), en cuyo caso lo devuelve sin cambios.
func StorageError(err error) error {
	if err == nil || Classified(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// CommitError marca err como fallo al confirmar la transacción.
func CommitError(err error) error {
	return fmt.Errorf("%w: %w: %w", ErrStorage, ErrCommit, err)
}
