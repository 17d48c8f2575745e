package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create persiste un nuevo producto. SKU lleva constraint único por empresa.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, sku, name, category, unit_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.SKU, product.Name,
		product.Category, product.UnitID, product.SupplierID,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa.
func (r *ProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, sku, name, category, unit_id, COALESCE(supplier_id, ''), created_at, updated_at
		FROM products WHERE company_id = $1 AND id = $2`
	return scanProduct(r.pool.QueryRow(context.Background(), query, companyID, id))
}

// GetBySKU obtiene un producto por SKU dentro de la empresa.
func (r *ProductRepo) GetBySKU(companyID, sku string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, sku, name, category, unit_id, COALESCE(supplier_id, ''), created_at, updated_at
		FROM products WHERE company_id = $1 AND sku = $2`
	return scanProduct(r.pool.QueryRow(context.Background(), query, companyID, sku))
}

// Update actualiza un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $3, category = $4, unit_id = $5, supplier_id = NULLIF($6, ''), updated_at = $7
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		product.CompanyID, product.ID, product.Name, product.Category,
		product.UnitID, product.SupplierID, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByCompany devuelve los productos de la empresa con paginación.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, company_id, sku, name, category, unit_id, COALESCE(supplier_id, ''), created_at, updated_at
		FROM products WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Category, &p.UnitID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByCompany devuelve el total de productos de la empresa.
func (r *ProductRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Category, &p.UnitID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
