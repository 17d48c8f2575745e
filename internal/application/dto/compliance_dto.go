package dto

import "time"

// CreateComplianceEventRequest registro de evento de cumplimiento.
type CreateComplianceEventRequest struct {
	FacilityID  string    `json:"facility_id"`
	EventType   string    `json:"event_type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ResolveComplianceEventRequest resolución de un evento abierto.
type ResolveComplianceEventRequest struct {
	Resolution string `json:"resolution"`
}

// ComplianceEventResponse representación pública de un evento.
type ComplianceEventResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	FacilityID  string     `json:"facility_id"`
	EventType   string     `json:"event_type"`
	Severity    string     `json:"severity"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	OccurredAt  time.Time  `json:"occurred_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
