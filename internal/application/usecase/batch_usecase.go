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

// BatchUseCase casos de uso para lotes de cultivo.
type BatchUseCase struct {
	repo         repository.BatchRepository
	areaRepo     repository.AreaRepository
	cultivarRepo repository.CultivarRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	repo repository.BatchRepository,
	areaRepo repository.AreaRepository,
	cultivarRepo repository.CultivarRepository,
) *BatchUseCase {
	return &BatchUseCase{repo: repo, areaRepo: areaRepo, cultivarRepo: cultivarRepo}
}

// Create crea un lote: el área debe pertenecer a la sede indicada y la sede
// estar en el conjunto accesible del caller. ErrDuplicate si el código ya existe.
func (uc *BatchUseCase) Create(tc *tenant.Context, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if err := tc.RequireFacility(in.FacilityID); err != nil {
		return nil, err
	}
	if in.Code == "" || in.AreaID == "" || in.CultivarID == "" || in.Population <= 0 {
		return nil, domain.ErrInvalidInput
	}
	area, err := uc.areaRepo.GetByID(tc.CompanyID, in.AreaID)
	if err != nil {
		return nil, err
	}
	if area == nil || area.FacilityID != in.FacilityID {
		return nil, domain.ErrNotFound
	}
	cultivar, err := uc.cultivarRepo.GetByID(tc.CompanyID, in.CultivarID)
	if err != nil {
		return nil, err
	}
	if cultivar == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.repo.GetByCode(tc.CompanyID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	batch := &entity.Batch{
		ID:         uuid.New().String(),
		CompanyID:  tc.CompanyID,
		FacilityID: in.FacilityID,
		AreaID:     in.AreaID,
		CultivarID: in.CultivarID,
		Code:       in.Code,
		Stage:      entity.BatchStageSeeding,
		Population: in.Population,
		StartedAt:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// GetByID obtiene un lote de la empresa del caller.
func (uc *BatchUseCase) GetByID(tc *tenant.Context, id string) (*dto.BatchResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	batch, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(batch.FacilityID) {
		return nil, domain.ErrForbidden
	}
	return toBatchResponse(batch), nil
}

// Update avanza la etapa y/o acumula mortalidad. Un lote cerrado no admite cambios.
func (uc *BatchUseCase) Update(tc *tenant.Context, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	batch, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if !tc.CanAccessFacility(batch.FacilityID) {
		return nil, domain.ErrForbidden
	}
	if batch.Stage == entity.BatchStageClosed {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	if in.MortalityDelta != nil {
		if *in.MortalityDelta < 0 {
			return nil, domain.ErrInvalidInput
		}
		newCount := batch.MortalityCount + *in.MortalityDelta
		if newCount > batch.Population {
			return nil, domain.ErrInvalidInput
		}
		batch.MortalityCount = newCount
	}
	if in.Stage != nil {
		switch *in.Stage {
		case entity.BatchStageSeeding, entity.BatchStageGrowing, entity.BatchStageHarvest:
			batch.Stage = *in.Stage
		case entity.BatchStageClosed:
			batch.Stage = entity.BatchStageClosed
			batch.ClosedAt = &now
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	batch.UpdatedAt = now
	if err := uc.repo.Update(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// List lista lotes de una sede accesible con paginación.
func (uc *BatchUseCase) List(tc *tenant.Context, facilityID string, page dto.PageRequest) ([]dto.BatchResponse, *dto.PageMeta, error) {
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
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	return &dto.BatchResponse{
		ID:             b.ID,
		CompanyID:      b.CompanyID,
		FacilityID:     b.FacilityID,
		AreaID:         b.AreaID,
		CultivarID:     b.CultivarID,
		Code:           b.Code,
		Stage:          b.Stage,
		Population:     b.Population,
		MortalityCount: b.MortalityCount,
		StartedAt:      b.StartedAt,
		ClosedAt:       b.ClosedAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
