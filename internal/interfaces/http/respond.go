package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/forms"
)

// Sobre estándar de la API: {success, data|error, meta:{timestamp, pagination}}.
// Todos los handlers responden a través de estos helpers; ninguno serializa a mano.

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{
		Success: true,
		Data:    data,
		Meta:    dto.Meta{Timestamp: time.Now().UTC()},
	})
}

func respondPage(c *fiber.Ctx, data any, page *dto.PageMeta) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{
		Success: true,
		Data:    data,
		Meta:    dto.Meta{Timestamp: time.Now().UTC(), Pagination: page},
	})
}

func respondError(c *fiber.Ctx, status int, code, message string, details any) error {
	return c.Status(status).JSON(dto.Envelope{
		Success: false,
		Error:   &dto.ErrorBody{Code: code, Message: message, Details: details},
		Meta:    dto.Meta{Timestamp: time.Now().UTC()},
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return respondError(c, fiber.StatusBadRequest, "VALIDATION", message, nil)
}

func notFound(c *fiber.Ctx, message string) error {
	return respondError(c, fiber.StatusNotFound, "NOT_FOUND", message, nil)
}

// respondDomainError traduce errores de dominio a códigos HTTP. Los errores de
// validación de formulario (forms.Errors) se responden 422 con el mapa
// {clave de campo: mensaje} en details.
func respondDomainError(c *fiber.Ctx, err error) error {
	var formErrs forms.Errors
	if errors.As(err, &formErrs) {
		return respondError(c, fiber.StatusUnprocessableEntity,
			"FORM_VALIDATION", "las respuestas no cumplen el esquema de la plantilla", formErrs)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, domain.ErrMissingTenant):
		return respondError(c, fiber.StatusUnauthorized, "MISSING_TENANT", "sesión sin tenant resoluble", nil)
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		// ErrUserNotFound también responde 401 para no filtrar qué emails existen.
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas", nil)
	case errors.Is(err, domain.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado", nil)
	case errors.Is(err, domain.ErrQuotaExceeded):
		return respondError(c, fiber.StatusForbidden, "QUOTA_EXCEEDED", "cuota del plan excedida", nil)
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c, "recurso no encontrado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respondError(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado en esta empresa", nil)
	case errors.Is(err, domain.ErrDuplicate):
		return respondError(c, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe", nil)
	case errors.Is(err, domain.ErrVersionMismatch):
		return respondError(c, fiber.StatusConflict, "VERSION_MISMATCH", "la versión del registro cambió; recargue y reintente", nil)
	case errors.Is(err, domain.ErrConflict):
		return respondError(c, fiber.StatusConflict, "CONFLICT", err.Error(), nil)
	default:
		return respondError(c, fiber.StatusInternalServerError, "INTERNAL", "error interno", nil)
	}
}

// parsePage lee page/limit del query string con defaults y topes aplicados.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	var p dto.PageRequest
	_ = c.QueryParser(&p)
	p.Normalize()
	return p
}
