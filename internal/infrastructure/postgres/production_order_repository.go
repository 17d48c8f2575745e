package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación del puerto ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepo struct {
	pool *pgxpool.Pool
}

// NewProductionOrderRepository construye el adaptador de persistencia para órdenes.
func NewProductionOrderRepository(pool *pgxpool.Pool) *ProductionOrderRepo {
	return &ProductionOrderRepo{pool: pool}
}

// Create persiste una nueva orden de producción.
func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, company_id, facility_id, batch_id, order_type,
			description, status, due_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.FacilityID, order.BatchID, order.OrderType,
		order.Description, order.Status, order.DueDate, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de la empresa.
func (r *ProductionOrderRepo) GetByID(companyID, id string) (*entity.ProductionOrder, error) {
	query := `
		SELECT id, company_id, facility_id, batch_id, order_type, description, status,
			due_date, created_by, created_at, updated_at
		FROM production_orders WHERE company_id = $1 AND id = $2`
	var o entity.ProductionOrder
	err := r.pool.QueryRow(context.Background(), query, companyID, id).Scan(
		&o.ID, &o.CompanyID, &o.FacilityID, &o.BatchID, &o.OrderType,
		&o.Description, &o.Status, &o.DueDate, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// Update actualiza estado y descripción de una orden.
func (r *ProductionOrderRepo) Update(order *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders SET status = $3, description = $4, updated_at = $5
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		order.CompanyID, order.ID, order.Status, order.Description, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	return nil
}

// ListByFacility devuelve las órdenes de una sede con paginación.
func (r *ProductionOrderRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `
		SELECT id, company_id, facility_id, batch_id, order_type, description, status,
			due_date, created_by, created_at, updated_at
		FROM production_orders WHERE company_id = $1 AND facility_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, companyID, facilityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.FacilityID, &o.BatchID, &o.OrderType,
			&o.Description, &o.Status, &o.DueDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// CountByFacility devuelve el total de órdenes de una sede.
func (r *ProductionOrderRepo) CountByFacility(companyID, facilityID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM production_orders WHERE company_id = $1 AND facility_id = $2`,
		companyID, facilityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count production orders: %w", err)
	}
	return n, nil
}
