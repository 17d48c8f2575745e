// Package inspection implementa el motor de inspecciones de calidad: plantillas
// versionadas, renderizado de formularios y el ciclo de vida de una inspección.
package inspection

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/forms"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// TemplateUseCase gestión de plantillas de inspección versionadas.
//
// Las plantillas nunca se mutan bajo inspecciones registradas: una edición
// estructural con usos crea la versión N+1 (mismo RootID) y archiva la vigente.
// Las inspecciones ya enviadas siguen apuntando a su versión histórica.
type TemplateUseCase struct {
	repo repository.QualityTemplateRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.QualityTemplateRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo}
}

// Create crea la versión 1 de una plantilla nueva. El esquema se valida
// estructuralmente (claves únicas, select con opciones).
func (uc *TemplateUseCase) Create(tc *tenant.Context, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := in.Schema.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	id := uuid.New().String()
	template := &entity.QualityTemplate{
		ID:        id,
		RootID:    id, // la v1 es su propia raíz
		CompanyID: tc.CompanyID,
		Name:      in.Name,
		Version:   1,
		Schema:    in.Schema,
		Status:    entity.TemplateStatusActive,
		CreatedBy: tc.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// GetByID obtiene una versión de plantilla de la empresa del caller.
func (uc *TemplateUseCase) GetByID(tc *tenant.Context, id string) (*dto.TemplateResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	template, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	return toTemplateResponse(template), nil
}

// Update edita la versión vigente de una plantilla. Si la versión tiene
// inspecciones registradas, un cambio de esquema crea la versión N+1 y archiva
// la vigente; sin usos la edición muta en sitio.
func (uc *TemplateUseCase) Update(tc *tenant.Context, id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	template, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	if template.Status != entity.TemplateStatusActive {
		// Las versiones archivadas son historia inmutable.
		return nil, domain.ErrConflict
	}
	if in.Schema != nil {
		if err := in.Schema.Validate(); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	name := template.Name
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		name = *in.Name
	}

	if in.Schema != nil {
		usages, err := uc.repo.CountUsages(template.ID)
		if err != nil {
			return nil, err
		}
		if usages > 0 {
			next := &entity.QualityTemplate{
				ID:        uuid.New().String(),
				RootID:    template.RootID,
				CompanyID: template.CompanyID,
				Name:      name,
				Version:   template.Version + 1,
				Schema:    *in.Schema,
				Status:    entity.TemplateStatusActive,
				CreatedBy: tc.UserID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := uc.repo.Create(next); err != nil {
				return nil, err
			}
			if err := uc.repo.SetStatus(tc.CompanyID, template.ID, entity.TemplateStatusArchived); err != nil {
				return nil, err
			}
			return toTemplateResponse(next), nil
		}
		template.Schema = *in.Schema
	}

	template.Name = name
	template.UpdatedAt = now
	if err := uc.repo.Update(template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// Archive archiva la versión vigente sin crear una nueva. Una plantilla
// archivada no admite inspecciones nuevas.
func (uc *TemplateUseCase) Archive(tc *tenant.Context, id string) error {
	if err := tc.Validate(); err != nil {
		return err
	}
	template, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return err
	}
	if template == nil {
		return domain.ErrNotFound
	}
	if template.Status != entity.TemplateStatusActive {
		return domain.ErrConflict
	}
	return uc.repo.SetStatus(tc.CompanyID, id, entity.TemplateStatusArchived)
}

// List lista plantillas de la empresa con paginación.
func (uc *TemplateUseCase) List(tc *tenant.Context, page dto.PageRequest) ([]dto.TemplateResponse, *dto.PageMeta, error) {
	if err := tc.Validate(); err != nil {
		return nil, nil, err
	}
	page.Normalize()
	list, err := uc.repo.ListByCompany(tc.CompanyID, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.CountByCompany(tc.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTemplateResponse(t))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

// ListVersions lista todas las versiones (activas y archivadas) de una raíz.
func (uc *TemplateUseCase) ListVersions(tc *tenant.Context, rootID string) ([]dto.TemplateResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListVersions(tc.CompanyID, rootID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTemplateResponse(t))
	}
	return items, nil
}

// Render devuelve el formulario renderizable de una versión: secciones y campos
// en orden de definición con el tipo ya normalizado (tipos desconocidos degradan
// a text sin romper el render).
func (uc *TemplateUseCase) Render(tc *tenant.Context, id string) (*dto.RenderedTemplateResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	template, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	return &dto.RenderedTemplateResponse{
		TemplateID: template.ID,
		Version:    template.Version,
		Name:       template.Name,
		Sections:   forms.Render(&template.Schema),
	}, nil
}

func toTemplateResponse(t *entity.QualityTemplate) *dto.TemplateResponse {
	if t == nil {
		return nil
	}
	return &dto.TemplateResponse{
		ID:        t.ID,
		RootID:    t.RootID,
		CompanyID: t.CompanyID,
		Name:      t.Name,
		Version:   t.Version,
		Schema:    t.Schema,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
