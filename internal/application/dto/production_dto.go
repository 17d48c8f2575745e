package dto

import "time"

// CreateCultivarRequest alta de variedad cultivada.
type CreateCultivarRequest struct {
	CropTypeID    string `json:"crop_type_id"`
	Name          string `json:"name"`
	DaysToHarvest int    `json:"days_to_harvest"`
}

// CultivarResponse representación pública de un cultivar.
type CultivarResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	CropTypeID    string    `json:"crop_type_id"`
	Name          string    `json:"name"`
	DaysToHarvest int       `json:"days_to_harvest"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateBatchRequest alta de lote de cultivo.
type CreateBatchRequest struct {
	FacilityID string `json:"facility_id"`
	AreaID     string `json:"area_id"`
	CultivarID string `json:"cultivar_id"`
	Code       string `json:"code"`
	Population int64  `json:"population"`
}

// UpdateBatchRequest actualización de lote (etapa y mortalidad).
type UpdateBatchRequest struct {
	Stage          *string `json:"stage"`
	MortalityDelta *int64  `json:"mortality_delta"` // unidades perdidas a sumar
}

// BatchResponse representación pública de un lote.
type BatchResponse struct {
	ID             string     `json:"id"`
	CompanyID      string     `json:"company_id"`
	FacilityID     string     `json:"facility_id"`
	AreaID         string     `json:"area_id"`
	CultivarID     string     `json:"cultivar_id"`
	Code           string     `json:"code"`
	Stage          string     `json:"stage"`
	Population     int64      `json:"population"`
	MortalityCount int64      `json:"mortality_count"`
	StartedAt      time.Time  `json:"started_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateProductionOrderRequest alta de orden de producción.
type CreateProductionOrderRequest struct {
	FacilityID  string     `json:"facility_id"`
	BatchID     string     `json:"batch_id"`
	OrderType   string     `json:"order_type"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateProductionOrderRequest cambio de estado/descripcion de una orden.
type UpdateProductionOrderRequest struct {
	Status      *string `json:"status"`
	Description *string `json:"description"`
}

// ProductionOrderResponse representación pública de una orden.
type ProductionOrderResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	FacilityID  string     `json:"facility_id"`
	BatchID     string     `json:"batch_id"`
	OrderType   string     `json:"order_type"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateActivityRequest registro de actividad operativa (append-only).
type CreateActivityRequest struct {
	FacilityID  string    `json:"facility_id"`
	TargetType  string    `json:"target_type"` // batch | area
	TargetID    string    `json:"target_id"`
	Action      string    `json:"action"`
	Notes       string    `json:"notes"`
	PerformedAt time.Time `json:"performed_at"`
}

// ActivityResponse representación pública de una actividad.
type ActivityResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	FacilityID  string    `json:"facility_id"`
	TargetType  string    `json:"target_type"`
	TargetID    string    `json:"target_id"`
	Action      string    `json:"action"`
	Notes       string    `json:"notes"`
	PerformedBy string    `json:"performed_by"`
	PerformedAt time.Time `json:"performed_at"`
	CreatedAt   time.Time `json:"created_at"`
}
