package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los
// devuelven tal cual o envueltos con fmt.Errorf("%w: ...") para añadir
// detalle; la capa HTTP los mapea a códigos de estado con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado al silo")
	ErrUnknownSilo        = errors.New("silo desconocido")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidStatus      = errors.New("transición de estado de solicitud inválida")
	ErrInvalidTransition  = errors.New("transición de etapa inválida")
	ErrNotLenderReady     = errors.New("la solicitud no está lista para lenders")
)
