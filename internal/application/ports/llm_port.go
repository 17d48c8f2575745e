package ports

import (
	"context"

	"github.com/agrovida/agroops-api/internal/domain/forms"
)

// ExtractedTemplate esquema de plantilla propuesto por el modelo a partir de
// texto libre. Es una propuesta: el usuario la revisa antes de crear la plantilla.
type ExtractedTemplate struct {
	Name       string
	Schema     forms.Schema
	Confidence float64
}

// PestDetection resultado del análisis de una foto de cultivo.
type PestDetection struct {
	PestDetected bool
	PestName     string
	Summary      string
	Confidence   float64
}

// FieldAnnotation anotación puntual del modelo sobre la respuesta de un campo
// al enviar una inspección. Es asesora: nunca altera el resultado derivado.
type FieldAnnotation struct {
	FieldKey   string
	Kind       string // observation | warning
	Summary    string
	Confidence float64
}

// LLMService puerto hacia el modelo de lenguaje (Anthropic). Toda llamada es
// best-effort desde el punto de vista del caller: un fallo del proveedor no
// debe tumbar la operación de negocio que lo invoca.
type LLMService interface {
	// ExtractTemplate convierte un checklist pegado como texto libre en un
	// esquema de plantilla estructurado.
	ExtractTemplate(ctx context.Context, text string) (*ExtractedTemplate, error)
	// DetectPests analiza una foto (base64) en busca de plagas o enfermedades.
	DetectPests(ctx context.Context, imageBase64, mediaType string) (*PestDetection, error)
	// AnnotateAnswers revisa las respuestas de una inspección enviada y devuelve
	// observaciones por campo.
	AnnotateAnswers(ctx context.Context, schema forms.Schema, answers forms.Answers) ([]FieldAnnotation, error)
}
