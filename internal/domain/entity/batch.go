package entity

import "time"

// Etapas de un lote de producción.
const (
	BatchStageSeeding = "seeding"
	BatchStageGrowing = "growing"
	BatchStageHarvest = "harvest"
	BatchStageClosed  = "closed"
)

// Batch representa un lote de cultivo: una población sembrada en un área,
// con seguimiento de mortalidad para los indicadores del dashboard.
type Batch struct {
	ID             string
	CompanyID      string
	FacilityID     string
	AreaID         string
	CultivarID     string
	Code           string // código visible del lote, único por empresa
	Stage          string // ver constantes BatchStage*
	Population     int64  // unidades sembradas/vivas iniciales
	MortalityCount int64  // unidades perdidas acumuladas
	StartedAt      time.Time
	ClosedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductionOrder representa una orden de trabajo sobre uno o varios lotes
// (siembra, aplicación, cosecha).
type ProductionOrder struct {
	ID          string
	CompanyID   string
	FacilityID  string
	BatchID     string
	OrderType   string // sowing, application, harvest, maintenance
	Description string
	Status      string // open, in_progress, done, cancelled
	DueDate     *time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
