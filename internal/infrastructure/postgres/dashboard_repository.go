package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas read-only de agregación por sede. Cada llamada
// re-escanea las tablas filtradas por sede: función pura del estado actual,
// sin caché ni mantenimiento incremental.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de agregación del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// CountActiveAreas cuenta las áreas activas de la sede.
func (r *DashboardRepo) CountActiveAreas(ctx context.Context, companyID, facilityID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM areas WHERE company_id = $1 AND facility_id = $2 AND status = 'active'`,
		companyID, facilityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active areas: %w", err)
	}
	return n, nil
}

// BatchMortality devuelve (muertes acumuladas, población total) de los lotes
// abiertos de la sede.
func (r *DashboardRepo) BatchMortality(ctx context.Context, companyID, facilityID string) (int64, int64, error) {
	var deaths, population int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(mortality_count), 0), COALESCE(SUM(population), 0)
		FROM batches
		WHERE company_id = $1 AND facility_id = $2 AND stage <> 'closed'`,
		companyID, facilityID).Scan(&deaths, &population)
	if err != nil {
		return 0, 0, fmt.Errorf("batch mortality: %w", err)
	}
	return deaths, population, nil
}

// CountLowStockItems cuenta existencias por debajo de su umbral de reposición.
func (r *DashboardRepo) CountLowStockItems(ctx context.Context, companyID, facilityID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM inventory_items
		WHERE company_id = $1 AND facility_id = $2 AND quantity_available < reorder_threshold`,
		companyID, facilityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock items: %w", err)
	}
	return n, nil
}

// CountOpenComplianceEvents cuenta eventos de cumplimiento abiertos de la sede.
func (r *DashboardRepo) CountOpenComplianceEvents(ctx context.Context, companyID, facilityID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM compliance_events
		WHERE company_id = $1 AND facility_id = $2 AND status = 'open'`,
		companyID, facilityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open compliance events: %w", err)
	}
	return n, nil
}
