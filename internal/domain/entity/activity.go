package entity

import "time"

// ActivityLog registra una actividad operativa sobre un lote o área (riego, poda,
// aplicación, cosecha). Es append-only: no hay update ni delete.
type ActivityLog struct {
	ID          string
	CompanyID   string
	FacilityID  string
	TargetType  string // batch | area
	TargetID    string
	Action      string
	Notes       string
	PerformedBy string // user id
	PerformedAt time.Time
	CreatedAt   time.Time
}

// Severidades de un evento de cumplimiento.
const (
	ComplianceSeverityInfo     = "info"
	ComplianceSeverityWarning  = "warning"
	ComplianceSeverityCritical = "critical"
)

// ComplianceEvent registra un evento de cumplimiento normativo (aplicación de agroquímico,
// retiro sanitario, auditoría). Exportable a XML para reporte regulatorio.
type ComplianceEvent struct {
	ID          string
	CompanyID   string
	FacilityID  string
	EventType   string
	Severity    string // info, warning, critical
	Description string
	Status      string // open, resolved
	OccurredAt  time.Time
	ResolvedAt  *time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
