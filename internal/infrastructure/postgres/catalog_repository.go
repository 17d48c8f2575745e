package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura de catálogos de referencia (sembrados una vez, sin company_id).
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository construye el adaptador de lectura de catálogos.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// CropTypes devuelve los tipos de cultivo.
func (r *CatalogRepo) CropTypes() ([]*entity.CropType, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, name, search_key FROM crop_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list crop types: %w", err)
	}
	defer rows.Close()

	var list []*entity.CropType
	for rows.Next() {
		var ct entity.CropType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.SearchKey); err != nil {
			return nil, fmt.Errorf("scan crop type: %w", err)
		}
		list = append(list, &ct)
	}
	return list, rows.Err()
}

// UnitsOfMeasure devuelve las unidades de medida.
func (r *CatalogRepo) UnitsOfMeasure() ([]*entity.UnitOfMeasure, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, code, name, symbol FROM units_of_measure ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var list []*entity.UnitOfMeasure
	for rows.Next() {
		var u entity.UnitOfMeasure
		if err := rows.Scan(&u.ID, &u.Code, &u.Name, &u.Symbol); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// GeoDivisions devuelve las divisiones geográficas de un padre; parentID vacío
// devuelve el primer nivel.
func (r *CatalogRepo) GeoDivisions(parentID string) ([]*entity.GeoDivision, error) {
	query := `SELECT id, code, name, COALESCE(parent_id, '') FROM geo_divisions
		WHERE ($1 = '' AND parent_id IS NULL) OR parent_id = $1
		ORDER BY code`
	rows, err := r.pool.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list geo divisions: %w", err)
	}
	defer rows.Close()

	var list []*entity.GeoDivision
	for rows.Next() {
		var g entity.GeoDivision
		if err := rows.Scan(&g.ID, &g.Code, &g.Name, &g.ParentID); err != nil {
			return nil, fmt.Errorf("scan geo division: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}
