package entity

import "time"

// Niveles de alcance de un rol.
const (
	RoleScopeCompany  = "company"
	RoleScopeFacility = "facility"
	RoleScopeArea     = "area"
)

// Role representa un conjunto nombrado de permisos con nivel numérico y alcance.
// Permissions es un mapa declarativo {recurso: [acciones]}; la resolución efectiva
// (unión con ancestros, manage ⇒ read+write) vive en internal/domain/permissions.
type Role struct {
	ID                  string
	CompanyID           string
	Name                string
	Level               int
	ScopeLevel          string              // company, facility, area
	Permissions         map[string][]string // {recurso: [read, write, delete, manage]}
	InheritsFromRoleIDs []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
