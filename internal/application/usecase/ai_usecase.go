package usecase

import (
	"context"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/ports"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// AIUseCase operaciones asistidas por el modelo: extracción de plantillas desde
// texto libre y detección de plagas en fotos. Las salidas son propuestas que el
// usuario revisa; nunca escriben datos por sí solas.
type AIUseCase struct {
	llm ports.LLMService
}

// NewAIUseCase construye el caso de uso.
func NewAIUseCase(llm ports.LLMService) *AIUseCase {
	return &AIUseCase{llm: llm}
}

// ExtractTemplate convierte un checklist pegado como texto en un esquema de
// plantilla. El esquema propuesto se valida estructuralmente antes de devolverse.
func (uc *AIUseCase) ExtractTemplate(ctx context.Context, tc *tenant.Context, in dto.ExtractTemplateRequest) (*dto.ExtractedTemplateDTO, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if in.Text == "" {
		return nil, domain.ErrInvalidInput
	}
	extracted, err := uc.llm.ExtractTemplate(ctx, in.Text)
	if err != nil {
		return nil, err
	}
	if err := extracted.Schema.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &dto.ExtractedTemplateDTO{
		Name:       extracted.Name,
		Schema:     extracted.Schema,
		Confidence: extracted.Confidence,
	}, nil
}

// DetectPests analiza una foto de cultivo en busca de plagas o enfermedades.
func (uc *AIUseCase) DetectPests(ctx context.Context, tc *tenant.Context, in dto.PestDetectionRequest) (*dto.PestDetectionDTO, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if in.ImageBase64 == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.MediaType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, domain.ErrInvalidInput
	}
	detection, err := uc.llm.DetectPests(ctx, in.ImageBase64, in.MediaType)
	if err != nil {
		return nil, err
	}
	return &dto.PestDetectionDTO{
		PestDetected: detection.PestDetected,
		PestName:     detection.PestName,
		Summary:      detection.Summary,
		Confidence:   detection.Confidence,
	}, nil
}
