package entity

import "time"

// Planes de suscripción disponibles.
const (
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Estados de una empresa. Las empresas nunca se borran físicamente:
// la baja es un cambio de estado a inactive.
const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
)

// Company representa una organización/tenant del sistema. Es la raíz de aislamiento:
// toda entidad operativa resuelve a exactamente una Company, directa o transitivamente.
type Company struct {
	ID            string
	Name          string
	TaxID         string // identificación tributaria (NIT o equivalente)
	Plan          string // ver constantes Plan*
	FacilityQuota int    // máximo de instalaciones permitidas por el plan
	UserQuota     int    // máximo de usuarios permitidos por el plan
	Status        string // active, inactive
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Quotas por defecto según plan.
func PlanQuotas(plan string) (facilities, users int) {
	switch plan {
	case PlanPro:
		return 10, 50
	case PlanEnterprise:
		return 100, 500
	default:
		return 2, 10
	}
}
