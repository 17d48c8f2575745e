package repository

import "context"

// DashboardRepository consultas read-only de agregación por sede. Función pura del
// estado operativo actual: cada llamada re-escanea las colecciones filtradas por
// sede; no hay caché ni mantenimiento incremental.
type DashboardRepository interface {
	CountActiveAreas(ctx context.Context, companyID, facilityID string) (int64, error)
	// BatchMortality devuelve (muertes acumuladas, población total) de los lotes
	// abiertos de la sede.
	BatchMortality(ctx context.Context, companyID, facilityID string) (deaths, population int64, err error)
	CountLowStockItems(ctx context.Context, companyID, facilityID string) (int64, error)
	CountOpenComplianceEvents(ctx context.Context, companyID, facilityID string) (int64, error)
}
