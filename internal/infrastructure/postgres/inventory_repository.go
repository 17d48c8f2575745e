package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL.
//
// La columna version es el token de concurrencia optimista: toda actualización
// la incrementa y devuelve el valor nuevo vía RETURNING, que se escribe de
// vuelta en el entity del caller.
type InventoryItemRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryItemRepository construye el adaptador de persistencia para existencias.
func NewInventoryItemRepository(pool *pgxpool.Pool) *InventoryItemRepo {
	return &InventoryItemRepo{pool: pool}
}

// Create persiste una existencia nueva. (product_id, facility_id) lleva
// constraint único por empresa.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, company_id, facility_id, product_id,
			quantity_available, reorder_threshold, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.FacilityID, item.ProductID,
		item.QuantityAvailable, item.ReorderThreshold, item.Version,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene una existencia de la empresa.
func (r *InventoryItemRepo) GetByID(companyID, id string) (*entity.InventoryItem, error) {
	query := inventorySelect + ` WHERE company_id = $1 AND id = $2`
	return scanInventoryItem(r.pool.QueryRow(context.Background(), query, companyID, id))
}

// GetByProductAndFacility obtiene la existencia de un producto en una sede.
func (r *InventoryItemRepo) GetByProductAndFacility(companyID, productID, facilityID string) (*entity.InventoryItem, error) {
	query := inventorySelect + ` WHERE company_id = $1 AND product_id = $2 AND facility_id = $3`
	return scanInventoryItem(r.pool.QueryRow(context.Background(), query, companyID, productID, facilityID))
}

// Update actualiza sin precondición (last-write-wins) e incrementa la versión.
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET quantity_available = $3, reorder_threshold = $4, version = version + 1, updated_at = $5
		WHERE company_id = $1 AND id = $2
		RETURNING version`
	err := r.pool.QueryRow(context.Background(), query,
		item.CompanyID, item.ID, item.QuantityAvailable, item.ReorderThreshold, item.UpdatedAt,
	).Scan(&item.Version)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateWithVersion actualiza solo si la versión almacenada coincide con la
// esperada; si no coincide devuelve domain.ErrVersionMismatch sin tocar la fila.
func (r *InventoryItemRepo) UpdateWithVersion(item *entity.InventoryItem, expectedVersion int64) error {
	query := `
		UPDATE inventory_items
		SET quantity_available = $3, reorder_threshold = $4, version = version + 1, updated_at = $5
		WHERE company_id = $1 AND id = $2 AND version = $6
		RETURNING version`
	err := r.pool.QueryRow(context.Background(), query,
		item.CompanyID, item.ID, item.QuantityAvailable, item.ReorderThreshold,
		item.UpdatedAt, expectedVersion,
	).Scan(&item.Version)
	if err != nil {
		if isNoRows(err) {
			// La fila existe pero con otra versión, o no existe: distinguirlo.
			current, getErr := r.GetByID(item.CompanyID, item.ID)
			if getErr != nil {
				return getErr
			}
			if current == nil {
				return domain.ErrNotFound
			}
			return domain.ErrVersionMismatch
		}
		return fmt.Errorf("update inventory item with version: %w", err)
	}
	return nil
}

// ListByFacility devuelve las existencias de una sede con paginación.
func (r *InventoryItemRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := inventorySelect + `
		WHERE company_id = $1 AND facility_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, companyID, facilityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(&i.ID, &i.CompanyID, &i.FacilityID, &i.ProductID,
			&i.QuantityAvailable, &i.ReorderThreshold, &i.Version, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// CountByFacility devuelve el total de existencias de una sede.
func (r *InventoryItemRepo) CountByFacility(companyID, facilityID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_items WHERE company_id = $1 AND facility_id = $2`,
		companyID, facilityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventory items: %w", err)
	}
	return n, nil
}

const inventorySelect = `
	SELECT id, company_id, facility_id, product_id, quantity_available,
		reorder_threshold, version, created_at, updated_at
	FROM inventory_items`

func scanInventoryItem(row rowScanner) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(&i.ID, &i.CompanyID, &i.FacilityID, &i.ProductID,
		&i.QuantityAvailable, &i.ReorderThreshold, &i.Version, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &i, nil
}
