package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa la existencia de un producto en una sede.
// Version es el token de concurrencia optimista: cada actualización exitosa lo incrementa;
// un caller puede enviar la versión esperada como precondición para evitar sobrescrituras
// silenciosas entre ediciones concurrentes.
type InventoryItem struct {
	ID                string
	CompanyID         string
	FacilityID        string
	ProductID         string
	QuantityAvailable decimal.Decimal
	ReorderThreshold  decimal.Decimal // por debajo de este nivel cuenta como stock bajo
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LowStock informa si el ítem está por debajo de su umbral de reposición.
func (i *InventoryItem) LowStock() bool {
	return i.QuantityAvailable.LessThan(i.ReorderThreshold)
}
