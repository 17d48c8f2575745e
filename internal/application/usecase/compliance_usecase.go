package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/application/ports"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// ComplianceUseCase registro, resolución y exportación de eventos de cumplimiento.
type ComplianceUseCase struct {
	repo        repository.ComplianceEventRepository
	companyRepo repository.CompanyRepository
	exporter    ports.ComplianceExporter
}

// NewComplianceUseCase construye el caso de uso.
func NewComplianceUseCase(
	repo repository.ComplianceEventRepository,
	companyRepo repository.CompanyRepository,
	exporter ports.ComplianceExporter,
) *ComplianceUseCase {
	return &ComplianceUseCase{repo: repo, companyRepo: companyRepo, exporter: exporter}
}

// Create registra un evento de cumplimiento en una sede accesible.
func (uc *ComplianceUseCase) Create(tc *tenant.Context, in dto.CreateComplianceEventRequest) (*dto.ComplianceEventResponse, error) {
	if err := tc.RequireFacility(in.FacilityID); err != nil {
		return nil, err
	}
	if in.EventType == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Severity {
	case entity.ComplianceSeverityInfo, entity.ComplianceSeverityWarning, entity.ComplianceSeverityCritical:
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	event := &entity.ComplianceEvent{
		ID:          uuid.New().String(),
		CompanyID:   tc.CompanyID,
		FacilityID:  in.FacilityID,
		EventType:   in.EventType,
		Severity:    in.Severity,
		Description: in.Description,
		Status:      "open",
		OccurredAt:  occurredAt,
		CreatedBy:   tc.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(event); err != nil {
		return nil, err
	}
	return toComplianceResponse(event), nil
}

// GetByID obtiene un evento de la empresa del caller.
func (uc *ComplianceUseCase) GetByID(tc *tenant.Context, id string) (*dto.ComplianceEventResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	event, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(event.FacilityID) {
		return nil, domain.ErrForbidden
	}
	return toComplianceResponse(event), nil
}

// Resolve cierra un evento abierto. Resolver un evento ya resuelto es conflicto.
func (uc *ComplianceUseCase) Resolve(tc *tenant.Context, id string, in dto.ResolveComplianceEventRequest) (*dto.ComplianceEventResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	event, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(event.FacilityID) {
		return nil, domain.ErrForbidden
	}
	if event.Status != "open" {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	event.Status = "resolved"
	event.ResolvedAt = &now
	if in.Resolution != "" {
		event.Description = event.Description + "\n\nResolución: " + in.Resolution
	}
	event.UpdatedAt = now
	if err := uc.repo.Update(event); err != nil {
		return nil, err
	}
	return toComplianceResponse(event), nil
}

// List lista eventos de la empresa con paginación.
func (uc *ComplianceUseCase) List(tc *tenant.Context, page dto.PageRequest) ([]dto.ComplianceEventResponse, *dto.PageMeta, error) {
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
	items := make([]dto.ComplianceEventResponse, 0, len(list))
	for _, e := range list {
		if !tc.CanAccessFacility(e.FacilityID) {
			continue
		}
		items = append(items, *toComplianceResponse(e))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

// ExportXML genera el XML regulatorio con los eventos del rango [from, to].
func (uc *ComplianceUseCase) ExportXML(tc *tenant.Context, from, to time.Time) ([]byte, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	events, err := uc.repo.ListForExport(tc.CompanyID, from, to)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Export(company, events, from, to)
}

func toComplianceResponse(e *entity.ComplianceEvent) *dto.ComplianceEventResponse {
	if e == nil {
		return nil
	}
	return &dto.ComplianceEventResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		FacilityID:  e.FacilityID,
		EventType:   e.EventType,
		Severity:    e.Severity,
		Description: e.Description,
		Status:      e.Status,
		OccurredAt:  e.OccurredAt,
		ResolvedAt:  e.ResolvedAt,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
