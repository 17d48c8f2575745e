package entity

import "time"

// Cultivar representa una variedad cultivada por una empresa (ej. "Tomate Chonto Río Grande").
// SearchKey guarda el nombre normalizado (sin tildes, minúsculas) para búsqueda y deduplicación.
type Cultivar struct {
	ID            string
	CompanyID     string
	CropTypeID    string // referencia al catálogo de tipos de cultivo
	Name          string
	SearchKey     string
	DaysToHarvest int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Supplier representa un proveedor de insumos de la empresa.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product representa un insumo o producto manejado en inventario
// (semilla, fertilizante, empaque, producto cosechado).
type Product struct {
	ID         string
	CompanyID  string
	SKU        string
	Name       string
	Category   string // seed, fertilizer, pesticide, packaging, harvested
	UnitID     string // unidad de medida del catálogo
	SupplierID string // opcional
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
