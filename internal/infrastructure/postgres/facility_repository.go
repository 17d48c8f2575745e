package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.FacilityRepository = (*FacilityRepo)(nil)

// FacilityRepo implementación del puerto FacilityRepository sobre PostgreSQL.
// Toda lectura filtra por company_id: el aislamiento de tenant vive en la consulta.
type FacilityRepo struct {
	pool *pgxpool.Pool
}

// NewFacilityRepository construye el adaptador de persistencia para sedes.
func NewFacilityRepository(pool *pgxpool.Pool) *FacilityRepo {
	return &FacilityRepo{pool: pool}
}

// Create persiste una nueva sede.
func (r *FacilityRepo) Create(facility *entity.Facility) error {
	query := `
		INSERT INTO facilities (id, company_id, name, address, geo_division, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		facility.ID, facility.CompanyID, facility.Name, facility.Address,
		facility.GeoDivision, facility.Status, facility.CreatedAt, facility.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert facility: %w", err)
	}
	return nil
}

// GetByID obtiene una sede de la empresa. Un id de otra empresa devuelve nil.
func (r *FacilityRepo) GetByID(companyID, id string) (*entity.Facility, error) {
	query := `
		SELECT id, company_id, name, address, geo_division, status, created_at, updated_at
		FROM facilities WHERE company_id = $1 AND id = $2`
	var f entity.Facility
	err := r.pool.QueryRow(context.Background(), query, companyID, id).Scan(
		&f.ID, &f.CompanyID, &f.Name, &f.Address, &f.GeoDivision, &f.Status,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get facility: %w", err)
	}
	return &f, nil
}

// Update actualiza una sede (company_id es inmutable, no se toca).
func (r *FacilityRepo) Update(facility *entity.Facility) error {
	query := `
		UPDATE facilities SET name = $3, address = $4, geo_division = $5, status = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		facility.CompanyID, facility.ID, facility.Name, facility.Address,
		facility.GeoDivision, facility.Status, facility.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update facility: %w", err)
	}
	return nil
}

// ListByCompany devuelve las sedes de la empresa con paginación.
func (r *FacilityRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Facility, error) {
	query := `
		SELECT id, company_id, name, address, geo_division, status, created_at, updated_at
		FROM facilities WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Facility
	for rows.Next() {
		var f entity.Facility
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.Name, &f.Address, &f.GeoDivision, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// CountByCompany devuelve el total de sedes de la empresa.
func (r *FacilityRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM facilities WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count facilities: %w", err)
	}
	return n, nil
}

var _ repository.AreaRepository = (*AreaRepo)(nil)

// AreaRepo implementación del puerto AreaRepository sobre PostgreSQL.
type AreaRepo struct {
	pool *pgxpool.Pool
}

// NewAreaRepository construye el adaptador de persistencia para áreas.
func NewAreaRepository(pool *pgxpool.Pool) *AreaRepo {
	return &AreaRepo{pool: pool}
}

// Create persiste una nueva área.
func (r *AreaRepo) Create(area *entity.Area) error {
	query := `
		INSERT INTO areas (id, company_id, facility_id, name, area_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		area.ID, area.CompanyID, area.FacilityID, area.Name,
		area.AreaType, area.Status, area.CreatedAt, area.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert area: %w", err)
	}
	return nil
}

// GetByID obtiene un área de la empresa.
func (r *AreaRepo) GetByID(companyID, id string) (*entity.Area, error) {
	query := `
		SELECT id, company_id, facility_id, name, area_type, status, created_at, updated_at
		FROM areas WHERE company_id = $1 AND id = $2`
	var a entity.Area
	err := r.pool.QueryRow(context.Background(), query, companyID, id).Scan(
		&a.ID, &a.CompanyID, &a.FacilityID, &a.Name, &a.AreaType, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	return &a, nil
}

// Update actualiza un área.
func (r *AreaRepo) Update(area *entity.Area) error {
	query := `
		UPDATE areas SET name = $3, area_type = $4, status = $5, updated_at = $6
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		area.CompanyID, area.ID, area.Name, area.AreaType, area.Status, area.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update area: %w", err)
	}
	return nil
}

// ListByFacility devuelve las áreas de una sede con paginación.
func (r *AreaRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.Area, error) {
	query := `
		SELECT id, company_id, facility_id, name, area_type, status, created_at, updated_at
		FROM areas WHERE company_id = $1 AND facility_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, companyID, facilityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.FacilityID, &a.Name, &a.AreaType, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CountByFacility devuelve el total de áreas de una sede.
func (r *AreaRepo) CountByFacility(companyID, facilityID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM areas WHERE company_id = $1 AND facility_id = $2`,
		companyID, facilityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count areas: %w", err)
	}
	return n, nil
}

// Delete elimina un área de la empresa.
func (r *AreaRepo) Delete(companyID, id string) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM areas WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	return nil
}
