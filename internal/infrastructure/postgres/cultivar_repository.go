package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.CultivarRepository = (*CultivarRepo)(nil)

// CultivarRepo implementación del puerto CultivarRepository sobre PostgreSQL.
type CultivarRepo struct {
	pool *pgxpool.Pool
}

// NewCultivarRepository construye el adaptador de persistencia para cultivares.
func NewCultivarRepository(pool *pgxpool.Pool) *CultivarRepo {
	return &CultivarRepo{pool: pool}
}

// Create persiste un nuevo cultivar. search_key lleva constraint único por empresa.
func (r *CultivarRepo) Create(cultivar *entity.Cultivar) error {
	query := `
		INSERT INTO cultivars (id, company_id, crop_type_id, name, search_key, days_to_harvest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		cultivar.ID, cultivar.CompanyID, cultivar.CropTypeID, cultivar.Name,
		cultivar.SearchKey, cultivar.DaysToHarvest, cultivar.CreatedAt, cultivar.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cultivar: %w", err)
	}
	return nil
}

// GetByID obtiene un cultivar de la empresa.
func (r *CultivarRepo) GetByID(companyID, id string) (*entity.Cultivar, error) {
	query := `
		SELECT id, company_id, crop_type_id, name, search_key, days_to_harvest, created_at, updated_at
		FROM cultivars WHERE company_id = $1 AND id = $2`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, companyID, id))
}

// GetBySearchKey busca por nombre normalizado (deduplicación).
func (r *CultivarRepo) GetBySearchKey(companyID, searchKey string) (*entity.Cultivar, error) {
	query := `
		SELECT id, company_id, crop_type_id, name, search_key, days_to_harvest, created_at, updated_at
		FROM cultivars WHERE company_id = $1 AND search_key = $2`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, companyID, searchKey))
}

// Update actualiza un cultivar.
func (r *CultivarRepo) Update(cultivar *entity.Cultivar) error {
	query := `
		UPDATE cultivars SET crop_type_id = $3, name = $4, search_key = $5, days_to_harvest = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		cultivar.CompanyID, cultivar.ID, cultivar.CropTypeID, cultivar.Name,
		cultivar.SearchKey, cultivar.DaysToHarvest, cultivar.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cultivar: %w", err)
	}
	return nil
}

// ListByCompany devuelve los cultivares de la empresa con paginación.
func (r *CultivarRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Cultivar, error) {
	query := `
		SELECT id, company_id, crop_type_id, name, search_key, days_to_harvest, created_at, updated_at
		FROM cultivars WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cultivars: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cultivar
	for rows.Next() {
		var c entity.Cultivar
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.CropTypeID, &c.Name, &c.SearchKey, &c.DaysToHarvest, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cultivar: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountByCompany devuelve el total de cultivares de la empresa.
func (r *CultivarRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM cultivars WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count cultivars: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *CultivarRepo) scanOne(row rowScanner) (*entity.Cultivar, error) {
	var c entity.Cultivar
	err := row.Scan(&c.ID, &c.CompanyID, &c.CropTypeID, &c.Name, &c.SearchKey, &c.DaysToHarvest, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cultivar: %w", err)
	}
	return &c, nil
}
