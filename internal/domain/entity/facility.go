package entity

import "time"

// Facility representa una sede productiva (finca, invernadero, planta) de una empresa.
// CompanyID es inmutable después de la creación: una sede no cambia de tenant.
type Facility struct {
	ID          string
	CompanyID   string
	Name        string
	Address     string
	GeoDivision string // código de división geográfica del catálogo (ej. departamento/municipio)
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Area representa una zona de cultivo dentro de una sede (lote, nave, cama).
type Area struct {
	ID         string
	CompanyID  string
	FacilityID string
	Name       string
	AreaType   string // field, greenhouse, nursery, storage
	Status     string // active, dormant
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Estados y tipos de área válidos.
const (
	AreaStatusActive  = "active"
	AreaStatusDormant = "dormant"
)
