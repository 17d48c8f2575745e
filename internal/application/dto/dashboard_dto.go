package dto

// DashboardSummaryDTO respuesta de GET /api/v1/dashboard/summary?facility_id=...
// KPIs por sede calculados bajo demanda (sin caché): función pura del estado actual.
type DashboardSummaryDTO struct {
	FacilityID string `json:"facility_id"`

	ActiveAreas int64 `json:"active_areas"`

	// Mortalidad de lotes: muertes/población*100, redondeado al entero más
	// cercano; población cero define la tasa como 0.
	MortalityRatePct int   `json:"mortality_rate_pct"`
	BatchPopulation  int64 `json:"batch_population"`
	BatchDeaths      int64 `json:"batch_deaths"`

	LowStockItems        int64 `json:"low_stock_items"`
	OpenComplianceEvents int64 `json:"open_compliance_events"`
}

// CatalogResponse catálogos de referencia para el frontend.
type CatalogEntry struct {
	ID   string `json:"id"`
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}
