package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementación del puerto ActivityLogRepository sobre PostgreSQL.
// La tabla es append-only: no hay UPDATE ni DELETE.
type ActivityLogRepo struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository construye el adaptador de persistencia para el log de actividades.
func NewActivityLogRepository(pool *pgxpool.Pool) *ActivityLogRepo {
	return &ActivityLogRepo{pool: pool}
}

// Create persiste una actividad.
func (r *ActivityLogRepo) Create(activity *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, company_id, facility_id, target_type, target_id,
			action, notes, performed_by, performed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		activity.ID, activity.CompanyID, activity.FacilityID, activity.TargetType,
		activity.TargetID, activity.Action, activity.Notes, activity.PerformedBy,
		activity.PerformedAt, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByTarget devuelve las actividades de un lote o área, más recientes primero.
func (r *ActivityLogRepo) ListByTarget(companyID, targetType, targetID string, limit, offset int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, company_id, facility_id, target_type, target_id, action, notes,
			performed_by, performed_at, created_at
		FROM activity_logs
		WHERE company_id = $1 AND target_type = $2 AND target_id = $3
		ORDER BY performed_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.pool.Query(context.Background(), query, companyID, targetType, targetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activities by target: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

// ListByFacility devuelve las actividades de una sede, más recientes primero.
func (r *ActivityLogRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, company_id, facility_id, target_type, target_id, action, notes,
			performed_by, performed_at, created_at
		FROM activity_logs
		WHERE company_id = $1 AND facility_id = $2
		ORDER BY performed_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, companyID, facilityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activities by facility: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

// CountByFacility devuelve el total de actividades de una sede.
func (r *ActivityLogRepo) CountByFacility(companyID, facilityID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM activity_logs WHERE company_id = $1 AND facility_id = $2`,
		companyID, facilityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return n, nil
}

// CountByTarget devuelve el total de actividades de un lote o área.
func (r *ActivityLogRepo) CountByTarget(companyID, targetType, targetID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM activity_logs WHERE company_id = $1 AND target_type = $2 AND target_id = $3`,
		companyID, targetType, targetID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count activities by target: %w", err)
	}
	return n, nil
}

func scanActivities(rows pgx.Rows) ([]*entity.ActivityLog, error) {
	var list []*entity.ActivityLog
	for rows.Next() {
		var a entity.ActivityLog
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.FacilityID, &a.TargetType, &a.TargetID,
			&a.Action, &a.Notes, &a.PerformedBy, &a.PerformedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
