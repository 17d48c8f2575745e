package dto

import (
	"time"

	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/forms"
)

// CreateTemplateRequest alta de plantilla de inspección.
type CreateTemplateRequest struct {
	Name   string      `json:"name"`
	Schema forms.Schema `json:"schema"`
}

// UpdateTemplateRequest edición estructural de plantilla. Si la versión vigente
// tiene inspecciones registradas, la edición produce la versión N+1.
type UpdateTemplateRequest struct {
	Name   *string       `json:"name"`
	Schema *forms.Schema `json:"schema"`
}

// TemplateResponse representación pública de una versión de plantilla.
type TemplateResponse struct {
	ID        string       `json:"id"`
	RootID    string       `json:"root_id"`
	CompanyID string       `json:"company_id"`
	Name      string       `json:"name"`
	Version   int          `json:"version"`
	Schema    forms.Schema `json:"schema"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// RenderedTemplateResponse formulario renderizable: secciones y campos ordenados
// con el tipo ya normalizado.
type RenderedTemplateResponse struct {
	TemplateID string                  `json:"template_id"`
	Version    int                     `json:"version"`
	Name       string                  `json:"name"`
	Sections   []forms.RenderedSection `json:"sections"`
}

// CreateInspectionRequest abre una inspección en borrador contra una plantilla.
type CreateInspectionRequest struct {
	FacilityID string `json:"facility_id"`
	TargetType string `json:"target_type"` // batch | area
	TargetID   string `json:"target_id"`
	TemplateID string `json:"template_id"`
}

// SubmitInspectionRequest envío de respuestas (transición terminal).
type SubmitInspectionRequest struct {
	Answers forms.Answers `json:"answers"`
}

// InspectionResponse representación pública de una inspección.
type InspectionResponse struct {
	ID              string                `json:"id"`
	CompanyID       string                `json:"company_id"`
	FacilityID      string                `json:"facility_id"`
	TargetType      string                `json:"target_type"`
	TargetID        string                `json:"target_id"`
	TemplateID      string                `json:"template_id"`
	TemplateVersion int                   `json:"template_version"`
	Status          string                `json:"status"`
	Result          string                `json:"result,omitempty"`
	Answers         forms.Answers         `json:"answers,omitempty"`
	AIAnnotations   []entity.AIAnnotation `json:"ai_annotations,omitempty"`
	InspectorID     string                `json:"inspector_id"`
	SubmittedAt     *time.Time            `json:"submitted_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}
