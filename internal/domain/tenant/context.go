// Package tenant define el contexto de tenant por petición. Se construye UNA vez
// en el middleware de autenticación a partir de los claims verificados de la sesión;
// los ids de empresa/sede enviados por el cliente son pistas a validar, nunca fuente
// de verdad.
package tenant

import "github.com/agrovida/agroops-api/internal/domain"

// Context identidad de tenant verificada de la petición en curso.
type Context struct {
	UserID      string
	CompanyID   string
	RoleID      string
	FacilityIDs []string // sedes accesibles para el usuario
}

// Validate falla cerrado: una operación sin tenant resoluble se rechaza antes
// de tocar persistencia.
func (c *Context) Validate() error {
	if c == nil || c.CompanyID == "" || c.UserID == "" {
		return domain.ErrMissingTenant
	}
	return nil
}

// CanAccessFacility informa si la sede está dentro del conjunto accesible.
// Un conjunto vacío significa acceso a todas las sedes de la empresa
// (usuarios de alcance company).
func (c *Context) CanAccessFacility(facilityID string) bool {
	if len(c.FacilityIDs) == 0 {
		return true
	}
	for _, id := range c.FacilityIDs {
		if id == facilityID {
			return true
		}
	}
	return false
}

// RequireFacility valida el acceso a la sede y devuelve ErrForbidden si está
// fuera del conjunto accesible del usuario.
func (c *Context) RequireFacility(facilityID string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if facilityID == "" {
		return domain.ErrInvalidInput
	}
	if !c.CanAccessFacility(facilityID) {
		return domain.ErrForbidden
	}
	return nil
}
