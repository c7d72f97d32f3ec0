package domain

import "errors"

// Domain errors.
var (
	ErrEventoNotFound       = errors.New("evento no encontrado")
	ErrEventoInvalido       = errors.New("evento inválido")
	ErrEstadoNotFound       = errors.New("estado no encontrado")
	ErrEstadoNombreVacio    = errors.New("el nombre del estado es requerido")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailTaken           = errors.New("el email ya está registrado")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrTokenInvalid         = errors.New("token inválido o expirado")
	ErrForbidden            = errors.New("no tiene permisos para esta acción")
	ErrFechaFinBeforeInicio = errors.New("la fecha de fin no puede ser anterior a la de inicio")
)
