package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// ActivityUseCase registro y consulta del log de actividades (append-only:
// no existen update ni delete).
type ActivityUseCase struct {
	repo      repository.ActivityLogRepository
	batchRepo repository.BatchRepository
	areaRepo  repository.AreaRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(
	repo repository.ActivityLogRepository,
	batchRepo repository.BatchRepository,
	areaRepo repository.AreaRepository,
) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, batchRepo: batchRepo, areaRepo: areaRepo}
}

// Create registra una actividad sobre un lote o área de una sede accesible.
// PerformedBy se sella desde la sesión verificada.
func (uc *ActivityUseCase) Create(tc *tenant.Context, in dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	if err := tc.RequireFacility(in.FacilityID); err != nil {
		return nil, err
	}
	if in.Action == "" || in.TargetID == "" {
		return nil, domain.ErrInvalidInput
	}

	// El objetivo debe existir y pertenecer a la sede indicada.
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

	now := time.Now()
	performedAt := in.PerformedAt
	if performedAt.IsZero() {
		performedAt = now
	}
	activity := &entity.ActivityLog{
		ID:          uuid.New().String(),
		CompanyID:   tc.CompanyID,
		FacilityID:  in.FacilityID,
		TargetType:  in.TargetType,
		TargetID:    in.TargetID,
		Action:      in.Action,
		Notes:       in.Notes,
		PerformedBy: tc.UserID,
		PerformedAt: performedAt,
		CreatedAt:   now,
	}
	if err := uc.repo.Create(activity); err != nil {
		return nil, err
	}
	return toActivityResponse(activity), nil
}

// ListByFacility lista actividades de una sede accesible.
func (uc *ActivityUseCase) ListByFacility(tc *tenant.Context, facilityID string, page dto.PageRequest) ([]dto.ActivityResponse, *dto.PageMeta, error) {
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
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toActivityResponse(a))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

// ListByTarget lista actividades de un lote o área.
func (uc *ActivityUseCase) ListByTarget(tc *tenant.Context, targetType, targetID string, page dto.PageRequest) ([]dto.ActivityResponse, *dto.PageMeta, error) {
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
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toActivityResponse(a))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

func toActivityResponse(a *entity.ActivityLog) *dto.ActivityResponse {
	if a == nil {
		return nil
	}
	return &dto.ActivityResponse{
		ID:          a.ID,
		CompanyID:   a.CompanyID,
		FacilityID:  a.FacilityID,
		TargetType:  a.TargetType,
		TargetID:    a.TargetID,
		Action:      a.Action,
		Notes:       a.Notes,
		PerformedBy: a.PerformedBy,
		PerformedAt: a.PerformedAt,
		CreatedAt:   a.CreatedAt,
	}
}
