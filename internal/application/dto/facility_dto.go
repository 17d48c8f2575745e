package dto

import "time"

// CreateFacilityRequest alta de sede.
type CreateFacilityRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	GeoDivision string `json:"geo_division"`
}

// UpdateFacilityRequest actualización parcial. CompanyID no es editable.
type UpdateFacilityRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
}

// FacilityResponse representación pública de una sede.
type FacilityResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	GeoDivision string    `json:"geo_division"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateAreaRequest alta de área dentro de una sede.
type CreateAreaRequest struct {
	FacilityID string `json:"facility_id"`
	Name       string `json:"name"`
	AreaType   string `json:"area_type"`
}

// UpdateAreaRequest actualización parcial de área.
type UpdateAreaRequest struct {
	Name     *string `json:"name"`
	AreaType *string `json:"area_type"`
	Status   *string `json:"status"`
}

// AreaResponse representación pública de un área.
type AreaResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	FacilityID string    `json:"facility_id"`
	Name       string    `json:"name"`
	AreaType   string    `json:"area_type"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
