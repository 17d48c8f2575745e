package entity

import (
	"time"

	"github.com/agrovida/agroops-api/internal/domain/forms"
)

// QualityTemplate plantilla versionada de inspección de calidad. Pertenece a la
// empresa (compartida entre sus sedes). RootID agrupa las versiones de una misma
// plantilla: una edición estructural con inspecciones registradas crea la versión
// N+1 en lugar de mutar la historia.
type QualityTemplate struct {
	ID        string
	RootID    string // igual para todas las versiones de la misma plantilla
	CompanyID string
	Name      string
	Version   int
	Schema    forms.Schema
	Status    string // active, archived (las versiones anteriores quedan archived)
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Estados de plantilla.
const (
	TemplateStatusActive   = "active"
	TemplateStatusArchived = "archived"
)
