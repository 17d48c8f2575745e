package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SupplierResponse representación pública de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest alta de producto/insumo.
type CreateProductRequest struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	UnitID     string `json:"unit_id"`
	SupplierID string `json:"supplier_id"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	UnitID     string    `json:"unit_id"`
	SupplierID string    `json:"supplier_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateInventoryItemRequest alta de existencia de un producto en una sede.
type CreateInventoryItemRequest struct {
	FacilityID        string          `json:"facility_id"`
	ProductID         string          `json:"product_id"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	ReorderThreshold  decimal.Decimal `json:"reorder_threshold"`
}

// UpdateInventoryQuantityRequest ajuste de cantidad disponible.
// ExpectedVersion es la precondición optimista opcional: si viene y no coincide
// con la versión almacenada, la operación responde Conflict en lugar de
// sobrescribir silenciosamente una edición concurrente.
type UpdateInventoryQuantityRequest struct {
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	ExpectedVersion   *int64          `json:"expected_version"`
}

// InventoryItemResponse representación pública de una existencia.
type InventoryItemResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	FacilityID        string          `json:"facility_id"`
	ProductID         string          `json:"product_id"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	ReorderThreshold  decimal.Decimal `json:"reorder_threshold"`
	LowStock          bool            `json:"low_stock"`
	Version           int64           `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
