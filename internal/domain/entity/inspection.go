package entity

import (
	"time"

	"github.com/agrovida/agroops-api/internal/domain/forms"
)

// Estados del ciclo de vida de una inspección:
// draft → submitted → (passed | failed | flagged). Una vez enviada es terminal:
// la acción correctiva es una inspección nueva, no una reapertura.
const (
	InspectionStatusDraft     = "draft"
	InspectionStatusSubmitted = "submitted"
)

// Objetivos válidos de una inspección.
const (
	InspectionTargetBatch = "batch"
	InspectionTargetArea  = "area"
)

// QualityInspection ejecución de una inspección: conjunto de respuestas por clave
// de campo que referencia (no posee) la plantilla y versión usadas.
type QualityInspection struct {
	ID              string
	CompanyID       string
	FacilityID      string
	TargetType      string // batch | area
	TargetID        string
	TemplateID      string
	TemplateVersion int
	Status          string // draft, submitted
	Result          string // passed, failed, flagged (derivado al enviar)
	Answers         forms.Answers
	AIAnnotations   []AIAnnotation
	InspectorID     string
	SubmittedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Submitted informa si la inspección ya es terminal (no admite más ediciones).
func (q *QualityInspection) Submitted() bool {
	return q.Status == InspectionStatusSubmitted
}

// AIAnnotation anotación de asistencia de IA adjunta a una respuesta
// (ej. detección de plagas sobre un campo photo).
type AIAnnotation struct {
	FieldKey   string  `json:"field_key"`
	Kind       string  `json:"kind"` // pest_detection
	Summary    string  `json:"summary"`
	Confidence float64 `json:"confidence"`
}
