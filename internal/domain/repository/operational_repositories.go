package repository

import (
	"time"

	"github.com/agrovida/agroops-api/internal/domain/entity"
)

// CultivarRepository puerto de persistencia para Cultivar.
type CultivarRepository interface {
	Create(cultivar *entity.Cultivar) error
	GetByID(companyID, id string) (*entity.Cultivar, error)
	GetBySearchKey(companyID, searchKey string) (*entity.Cultivar, error)
	Update(cultivar *entity.Cultivar) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Cultivar, error)
	CountByCompany(companyID string) (int64, error)
}

// SupplierRepository puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(companyID, id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error)
	CountByCompany(companyID string) (int64, error)
	Delete(companyID, id string) error
}

// ProductRepository puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(companyID, id string) (*entity.Product, error)
	GetBySKU(companyID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	CountByCompany(companyID string) (int64, error)
}

// BatchRepository puerto de persistencia para Batch.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(companyID, id string) (*entity.Batch, error)
	GetByCode(companyID, code string) (*entity.Batch, error)
	Update(batch *entity.Batch) error
	ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.Batch, error)
	CountByFacility(companyID, facilityID string) (int64, error)
}

// ProductionOrderRepository puerto de persistencia para ProductionOrder.
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(companyID, id string) (*entity.ProductionOrder, error)
	Update(order *entity.ProductionOrder) error
	ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.ProductionOrder, error)
	CountByFacility(companyID, facilityID string) (int64, error)
}

// ActivityLogRepository puerto de persistencia para ActivityLog (append-only).
type ActivityLogRepository interface {
	Create(activity *entity.ActivityLog) error
	ListByTarget(companyID, targetType, targetID string, limit, offset int) ([]*entity.ActivityLog, error)
	ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.ActivityLog, error)
	CountByFacility(companyID, facilityID string) (int64, error)
	CountByTarget(companyID, targetType, targetID string) (int64, error)
}

// ComplianceEventRepository puerto de persistencia para ComplianceEvent.
type ComplianceEventRepository interface {
	Create(event *entity.ComplianceEvent) error
	GetByID(companyID, id string) (*entity.ComplianceEvent, error)
	Update(event *entity.ComplianceEvent) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.ComplianceEvent, error)
	CountByCompany(companyID string) (int64, error)
	// ListForExport devuelve los eventos del rango para el reporte XML regulatorio.
	ListForExport(companyID string, from, to time.Time) ([]*entity.ComplianceEvent, error)
}
