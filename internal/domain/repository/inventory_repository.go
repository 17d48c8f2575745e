package repository

import "github.com/agrovida/agroops-api/internal/domain/entity"

// InventoryItemRepository puerto de persistencia para InventoryItem.
//
// UpdateWithVersion aplica la precondición de concurrencia optimista: la fila solo
// se actualiza si su version actual coincide con expectedVersion; si no coincide
// devuelve domain.ErrVersionMismatch. Update sin precondición conserva la semántica
// last-write-wins del almacén.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(companyID, id string) (*entity.InventoryItem, error)
	GetByProductAndFacility(companyID, productID, facilityID string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	UpdateWithVersion(item *entity.InventoryItem, expectedVersion int64) error
	ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.InventoryItem, error)
	CountByFacility(companyID, facilityID string) (int64, error)
}
