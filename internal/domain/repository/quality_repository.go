package repository

import "github.com/agrovida/agroops-api/internal/domain/entity"

// QualityTemplateRepository puerto de persistencia para QualityTemplate.
// Una plantilla con inspecciones registradas no se muta: la edición estructural
// crea una versión nueva (mismo RootID) y archiva la anterior.
type QualityTemplateRepository interface {
	Create(template *entity.QualityTemplate) error
	GetByID(companyID, id string) (*entity.QualityTemplate, error)
	GetActiveByRoot(companyID, rootID string) (*entity.QualityTemplate, error)
	// Update muta una versión en sitio; solo es válido sin inspecciones registradas.
	Update(template *entity.QualityTemplate) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.QualityTemplate, error)
	ListVersions(companyID, rootID string) ([]*entity.QualityTemplate, error)
	CountByCompany(companyID string) (int64, error)
	SetStatus(companyID, id, status string) error
	// CountUsages cuenta inspecciones que referencian la versión de plantilla.
	CountUsages(templateID string) (int64, error)
}

// QualityInspectionRepository puerto de persistencia para QualityInspection.
type QualityInspectionRepository interface {
	Create(inspection *entity.QualityInspection) error
	GetByID(companyID, id string) (*entity.QualityInspection, error)
	Update(inspection *entity.QualityInspection) error
	ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.QualityInspection, error)
	ListByTarget(companyID, targetType, targetID string, limit, offset int) ([]*entity.QualityInspection, error)
	CountByFacility(companyID, facilityID string) (int64, error)
	CountByTarget(companyID, targetType, targetID string) (int64, error)
}
