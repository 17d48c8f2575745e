package repository

import "github.com/agrovida/agroops-api/internal/domain/entity"

// FacilityRepository puerto de persistencia para Facility.
// Todas las lecturas llevan companyID: el aislamiento de tenant se aplica en la
// consulta, no por convención del caller.
type FacilityRepository interface {
	Create(facility *entity.Facility) error
	GetByID(companyID, id string) (*entity.Facility, error)
	Update(facility *entity.Facility) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Facility, error)
	CountByCompany(companyID string) (int64, error)
}

// AreaRepository puerto de persistencia para Area.
type AreaRepository interface {
	Create(area *entity.Area) error
	GetByID(companyID, id string) (*entity.Area, error)
	Update(area *entity.Area) error
	ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.Area, error)
	CountByFacility(companyID, facilityID string) (int64, error)
	Delete(companyID, id string) error
}
