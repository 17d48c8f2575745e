package inspection

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/ports"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/forms"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
	"github.com/agrovida/agroops-api/pkg/logger"
)

// aiAnnotateTimeout tope para la pasada de anotaciones del modelo al enviar.
const aiAnnotateTimeout = 20 * time.Second

// UseCase ciclo de vida de inspecciones: borrador → enviada (terminal).
// El resultado (passed/failed/flagged) se deriva de los umbrales del esquema al
// enviar; la acción correctiva es una inspección nueva, no una reapertura.
type UseCase struct {
	repo         repository.QualityInspectionRepository
	templateRepo repository.QualityTemplateRepository
	batchRepo    repository.BatchRepository
	areaRepo     repository.AreaRepository
	llm          ports.LLMService
	reports      ports.InspectionReportGenerator
	log          *logger.Logger
}

// NewUseCase construye el caso de uso. llm puede ser nil (sin anotaciones).
func NewUseCase(
	repo repository.QualityInspectionRepository,
	templateRepo repository.QualityTemplateRepository,
	batchRepo repository.BatchRepository,
	areaRepo repository.AreaRepository,
	llm ports.LLMService,
	reports ports.InspectionReportGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		templateRepo: templateRepo,
		batchRepo:    batchRepo,
		areaRepo:     areaRepo,
		llm:          llm,
		reports:      reports,
		log:          log,
	}
}

// Create abre una inspección en borrador contra la versión de plantilla indicada.
// La versión queda sellada en la inspección: ediciones posteriores de la plantilla
// no la afectan.
func (uc *UseCase) Create(tc *tenant.Context, in dto.CreateInspectionRequest) (*dto.InspectionResponse, error) {
	if err := tc.RequireFacility(in.FacilityID); err != nil {
		return nil, err
	}
	if in.TargetID == "" || in.TemplateID == "" {
		return nil, domain.ErrInvalidInput
	}

	switch in.TargetType {
	case entity.InspectionTargetBatch:
		batch, err := uc.batchRepo.GetByID(tc.CompanyID, in.TargetID)
		if err != nil {
			return nil, err
		}
		if batch == nil || batch.FacilityID != in.FacilityID {
			return nil, domain.ErrNotFound
		}
	case entity.InspectionTargetArea:
		area, err := uc.areaRepo.GetByID(tc.CompanyID, in.TargetID)
		if err != nil {
			return nil, err
		}
		if area == nil || area.FacilityID != in.FacilityID {
			return nil, domain.ErrNotFound
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	template, err := uc.templateRepo.GetByID(tc.CompanyID, in.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	if template.Status != entity.TemplateStatusActive {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	inspection := &entity.QualityInspection{
		ID:              uuid.New().String(),
		CompanyID:       tc.CompanyID,
		FacilityID:      in.FacilityID,
		TargetType:      in.TargetType,
		TargetID:        in.TargetID,
		TemplateID:      template.ID,
		TemplateVersion: template.Version,
		Status:          entity.InspectionStatusDraft,
		InspectorID:     tc.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(inspection); err != nil {
		return nil, err
	}
	return toInspectionResponse(inspection), nil
}

// GetByID obtiene una inspección de la empresa del caller.
func (uc *UseCase) GetByID(tc *tenant.Context, id string) (*dto.InspectionResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	inspection, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if inspection == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(inspection.FacilityID) {
		return nil, domain.ErrForbidden
	}
	return toInspectionResponse(inspection), nil
}

// Submit envía las respuestas de un borrador. La validación es estricta y
// acumulativa: si hay errores se devuelve el mapa completo (forms.Errors) y la
// inspección no cambia. Con respuestas válidas la inspección pasa a submitted,
// se deriva el resultado y la transición es terminal.
//
// Las anotaciones del modelo son best-effort: un fallo del proveedor no revierte
// el envío ya persistido.
func (uc *UseCase) Submit(ctx context.Context, tc *tenant.Context, id string, in dto.SubmitInspectionRequest) (*dto.InspectionResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	inspection, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if inspection == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(inspection.FacilityID) {
		return nil, domain.ErrForbidden
	}
	if inspection.Submitted() {
		return nil, domain.ErrConflict
	}

	template, err := uc.templateRepo.GetByID(tc.CompanyID, inspection.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}

	if errs := forms.ValidateAnswers(&template.Schema, in.Answers); errs != nil {
		return nil, errs
	}

	now := time.Now()
	inspection.Answers = in.Answers
	inspection.Status = entity.InspectionStatusSubmitted
	inspection.Result = forms.EvaluateResult(&template.Schema, in.Answers)
	inspection.SubmittedAt = &now
	inspection.UpdatedAt = now
	if err := uc.repo.Update(inspection); err != nil {
		return nil, err
	}

	uc.annotate(ctx, inspection, template)
	return toInspectionResponse(inspection), nil
}

// annotate pide observaciones al modelo y las adjunta a la inspección ya enviada.
// Nunca altera el resultado derivado; los errores solo se registran.
func (uc *UseCase) annotate(ctx context.Context, inspection *entity.QualityInspection, template *entity.QualityTemplate) {
	if uc.llm == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, aiAnnotateTimeout)
	defer cancel()

	annotations, err := uc.llm.AnnotateAnswers(ctx, template.Schema, inspection.Answers)
	if err != nil {
		if uc.log != nil {
			uc.log.Warn().Err(err).Str("inspection_id", inspection.ID).Msg("anotación de IA fallida")
		}
		return
	}
	if len(annotations) == 0 {
		return
	}
	for _, a := range annotations {
		inspection.AIAnnotations = append(inspection.AIAnnotations, entity.AIAnnotation{
			FieldKey:   a.FieldKey,
			Kind:       a.Kind,
			Summary:    a.Summary,
			Confidence: a.Confidence,
		})
	}
	inspection.UpdatedAt = time.Now()
	if err := uc.repo.Update(inspection); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).Str("inspection_id", inspection.ID).Msg("no se pudieron persistir las anotaciones de IA")
	}
}

// ListByFacility lista inspecciones de una sede accesible con paginación.
func (uc *UseCase) ListByFacility(tc *tenant.Context, facilityID string, page dto.PageRequest) ([]dto.InspectionResponse, *dto.PageMeta, error) {
	if err := tc.RequireFacility(facilityID); err != nil {
		return nil, nil, err
	}
	page.Normalize()
	list, err := uc.repo.ListByFacility(tc.CompanyID, facilityID, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.CountByFacility(tc.CompanyID, facilityID)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.InspectionResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInspectionResponse(i))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

// ListByTarget lista inspecciones de un lote o área.
func (uc *UseCase) ListByTarget(tc *tenant.Context, targetType, targetID string, page dto.PageRequest) ([]dto.InspectionResponse, *dto.PageMeta, error) {
	if err := tc.Validate(); err != nil {
		return nil, nil, err
	}
	page.Normalize()
	list, err := uc.repo.ListByTarget(tc.CompanyID, targetType, targetID, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.CountByTarget(tc.CompanyID, targetType, targetID)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.InspectionResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInspectionResponse(i))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

// GeneratePDF genera el reporte PDF de una inspección enviada.
func (uc *UseCase) GeneratePDF(tc *tenant.Context, id string) ([]byte, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	inspection, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if inspection == nil {
		return nil, domain.ErrNotFound
	}
	if !tc.CanAccessFacility(inspection.FacilityID) {
		return nil, domain.ErrForbidden
	}
	if !inspection.Submitted() {
		return nil, domain.ErrConflict
	}
	template, err := uc.templateRepo.GetByID(tc.CompanyID, inspection.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	return uc.reports.Generate(inspection, template)
}

func toInspectionResponse(i *entity.QualityInspection) *dto.InspectionResponse {
	if i == nil {
		return nil
	}
	return &dto.InspectionResponse{
		ID:              i.ID,
		CompanyID:       i.CompanyID,
		FacilityID:      i.FacilityID,
		TargetType:      i.TargetType,
		TargetID:        i.TargetID,
		TemplateID:      i.TemplateID,
		TemplateVersion: i.TemplateVersion,
		Status:          i.Status,
		Result:          i.Result,
		Answers:         i.Answers,
		AIAnnotations:   i.AIAnnotations,
		InspectorID:     i.InspectorID,
		SubmittedAt:     i.SubmittedAt,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
