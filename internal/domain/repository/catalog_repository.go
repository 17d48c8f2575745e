package repository

import "github.com/agrovida/agroops-api/internal/domain/entity"

// CatalogRepository puerto de lectura de los catálogos de referencia
// (sembrados una vez, solo lectura en runtime, compartidos entre tenants).
type CatalogRepository interface {
	CropTypes() ([]*entity.CropType, error)
	UnitsOfMeasure() ([]*entity.UnitOfMeasure, error)
	GeoDivisions(parentID string) ([]*entity.GeoDivision, error)
}
