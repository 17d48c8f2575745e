package dto

import "time"

// CreateCompanyRequest alta de empresa (signup).
type CreateCompanyRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Plan  string `json:"plan"` // basic, pro, enterprise
}

// UpdateCompanyRequest actualización parcial de empresa.
type UpdateCompanyRequest struct {
	Name   *string `json:"name"`
	Plan   *string `json:"plan"`
	Status *string `json:"status"` // active, inactive (baja lógica)
}

// CompanyResponse representación pública de una empresa.
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TaxID         string    `json:"tax_id"`
	Plan          string    `json:"plan"`
	FacilityQuota int       `json:"facility_quota"`
	UserQuota     int       `json:"user_quota"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
