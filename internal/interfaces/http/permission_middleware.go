package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/domain/permissions"
)

// permissionChecker contrato mínimo del middleware de autorización.
// Lo implementa *permissions.Resolver; la interfaz permite fakes en tests.
type permissionChecker interface {
	Allows(roleID string, resource permissions.Resource, action permissions.Action) (bool, error)
}

// RequirePermission devuelve un middleware Fiber que exige que el rol del usuario
// permita la tupla (recurso, acción). Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 → sesión sin rol (token legacy o usuario sin rol asignado).
//   - 403 → el mapa efectivo del rol no concede la acción.
//   - 503 → fallo de infraestructura al resolver el rol.
func RequirePermission(checker permissionChecker, resource permissions.Resource, action permissions.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc := GetTenant(c)
		if tc == nil {
			return respondError(c, fiber.StatusUnauthorized, "MISSING_TENANT", "sesión no autenticada", nil)
		}
		if tc.RoleID == "" {
			return respondError(c, fiber.StatusUnauthorized, "MISSING_ROLE", "la sesión no tiene rol asignado", nil)
		}

		allowed, err := checker.Allows(tc.RoleID, resource, action)
		if err != nil {
			return respondError(c, fiber.StatusServiceUnavailable, "PERMISSION_CHECK_FAILED",
				"no se pudo resolver el rol, intente más tarde", nil)
		}
		if !allowed {
			return respondError(c, fiber.StatusForbidden, "FORBIDDEN",
				"el rol no permite "+string(action)+" sobre "+string(resource), nil)
		}
		return c.Next()
	}
}
