package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El responder HTTP los traduce a códigos 400/401/403/404/409/422/500.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrVersionMismatch    = errors.New("la versión del registro no coincide")
	ErrMissingTenant      = errors.New("tenant no resuelto en la sesión")
	ErrQuotaExceeded      = errors.New("cuota del plan excedida")
)
