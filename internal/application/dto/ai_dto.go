package dto

import "github.com/agrovida/agroops-api/internal/domain/forms"

// ExtractTemplateRequest texto libre (checklist pegado) a convertir en esquema.
type ExtractTemplateRequest struct {
	Text string `json:"text"`
}

// ExtractedTemplateDTO esquema propuesto por el modelo; el usuario lo revisa
// antes de crear la plantilla.
type ExtractedTemplateDTO struct {
	Name       string       `json:"name"`
	Schema     forms.Schema `json:"schema"`
	Confidence float64      `json:"confidence"`
}

// PestDetectionRequest imagen a analizar (base64) con su media type.
type PestDetectionRequest struct {
	ImageBase64 string `json:"image_base64"`
	MediaType   string `json:"media_type"` // image/jpeg, image/png
}

// PestDetectionDTO resultado del análisis de plagas de una foto.
type PestDetectionDTO struct {
	PestDetected bool    `json:"pest_detected"`
	PestName     string  `json:"pest_name,omitempty"`
	Summary      string  `json:"summary"`
	Confidence   float64 `json:"confidence"`
}
