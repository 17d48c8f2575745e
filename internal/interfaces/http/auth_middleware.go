package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/domain/tenant"
	"github.com/agrovida/agroops-api/pkg/jwt"
)

// localTenant clave de Locals para el contexto de tenant verificado.
const localTenant = "tenant_context"

// AuthMiddleware valida el Bearer Token JWT y construye el tenant.Context de la
// petición UNA sola vez, a partir de los claims verificados. Ningún handler
// posterior vuelve a confiar en ids de empresa/sede enviados por el cliente.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return respondError(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido", nil)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respondError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>", nil)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respondError(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío", nil)
		}

		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return respondError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado", nil)
		}

		tc := &tenant.Context{
			UserID:      claims.UserID,
			CompanyID:   claims.CompanyID,
			RoleID:      claims.RoleID,
			FacilityIDs: claims.FacilityIDs,
		}
		if err := tc.Validate(); err != nil {
			return respondError(c, fiber.StatusUnauthorized, "MISSING_TENANT", "el token no resuelve un tenant", nil)
		}

		c.Locals(localTenant, tc)
		return c.Next()
	}
}

// GetTenant devuelve el contexto de tenant de la petición (después de AuthMiddleware).
// Devuelve nil si el middleware no corrió; los usecases fallan cerrado ante nil.
func GetTenant(c *fiber.Ctx) *tenant.Context {
	tc, _ := c.Locals(localTenant).(*tenant.Context)
	return tc
}
