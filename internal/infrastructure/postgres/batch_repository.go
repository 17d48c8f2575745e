package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	pool *pgxpool.Pool
}

// NewBatchRepository construye el adaptador de persistencia para lotes.
func NewBatchRepository(pool *pgxpool.Pool) *BatchRepo {
	return &BatchRepo{pool: pool}
}

// Create persiste un nuevo lote. code lleva constraint único por empresa.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, company_id, facility_id, area_id, cultivar_id, code, stage,
			population, mortality_count, started_at, closed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(context.Background(), query,
		batch.ID, batch.CompanyID, batch.FacilityID, batch.AreaID, batch.CultivarID,
		batch.Code, batch.Stage, batch.Population, batch.MortalityCount,
		batch.StartedAt, batch.ClosedAt, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote de la empresa.
func (r *BatchRepo) GetByID(companyID, id string) (*entity.Batch, error) {
	query := batchSelect + ` WHERE company_id = $1 AND id = $2`
	return scanBatch(r.pool.QueryRow(context.Background(), query, companyID, id))
}

// GetByCode obtiene un lote por su código visible dentro de la empresa.
func (r *BatchRepo) GetByCode(companyID, code string) (*entity.Batch, error) {
	query := batchSelect + ` WHERE company_id = $1 AND code = $2`
	return scanBatch(r.pool.QueryRow(context.Background(), query, companyID, code))
}

// Update actualiza etapa, mortalidad y cierre de un lote.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	query := `
		UPDATE batches SET stage = $3, mortality_count = $4, closed_at = $5, updated_at = $6
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		batch.CompanyID, batch.ID, batch.Stage, batch.MortalityCount,
		batch.ClosedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// ListByFacility devuelve los lotes de una sede con paginación.
func (r *BatchRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.Batch, error) {
	query := batchSelect + `
		WHERE company_id = $1 AND facility_id = $2
		ORDER BY started_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, companyID, facilityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// CountByFacility devuelve el total de lotes de una sede.
func (r *BatchRepo) CountByFacility(companyID, facilityID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM batches WHERE company_id = $1 AND facility_id = $2`,
		companyID, facilityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count batches: %w", err)
	}
	return n, nil
}

const batchSelect = `
	SELECT id, company_id, facility_id, area_id, cultivar_id, code, stage,
		population, mortality_count, started_at, closed_at, created_at, updated_at
	FROM batches`

func scanBatch(row rowScanner) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(&b.ID, &b.CompanyID, &b.FacilityID, &b.AreaID, &b.CultivarID,
		&b.Code, &b.Stage, &b.Population, &b.MortalityCount,
		&b.StartedAt, &b.ClosedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	return &b, nil
}
