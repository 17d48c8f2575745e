package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.ComplianceEventRepository = (*ComplianceEventRepo)(nil)

// ComplianceEventRepo implementación del puerto ComplianceEventRepository sobre PostgreSQL.
type ComplianceEventRepo struct {
	pool *pgxpool.Pool
}

// NewComplianceEventRepository construye el adaptador de persistencia para eventos de cumplimiento.
func NewComplianceEventRepository(pool *pgxpool.Pool) *ComplianceEventRepo {
	return &ComplianceEventRepo{pool: pool}
}

// Create persiste un nuevo evento.
func (r *ComplianceEventRepo) Create(event *entity.ComplianceEvent) error {
	query := `
		INSERT INTO compliance_events (id, company_id, facility_id, event_type, severity,
			description, status, occurred_at, resolved_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		event.ID, event.CompanyID, event.FacilityID, event.EventType, event.Severity,
		event.Description, event.Status, event.OccurredAt, event.ResolvedAt,
		event.CreatedBy, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert compliance event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento de la empresa.
func (r *ComplianceEventRepo) GetByID(companyID, id string) (*entity.ComplianceEvent, error) {
	query := complianceSelect + ` WHERE company_id = $1 AND id = $2`
	var e entity.ComplianceEvent
	err := r.pool.QueryRow(context.Background(), query, companyID, id).Scan(
		&e.ID, &e.CompanyID, &e.FacilityID, &e.EventType, &e.Severity,
		&e.Description, &e.Status, &e.OccurredAt, &e.ResolvedAt,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compliance event: %w", err)
	}
	return &e, nil
}

// Update actualiza estado/resolución de un evento.
func (r *ComplianceEventRepo) Update(event *entity.ComplianceEvent) error {
	query := `
		UPDATE compliance_events SET description = $3, status = $4, resolved_at = $5, updated_at = $6
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		event.CompanyID, event.ID, event.Description, event.Status,
		event.ResolvedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update compliance event: %w", err)
	}
	return nil
}

// ListByCompany devuelve eventos de la empresa con paginación, más recientes primero.
func (r *ComplianceEventRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.ComplianceEvent, error) {
	query := complianceSelect + `
		WHERE company_id = $1 ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list compliance events: %w", err)
	}
	defer rows.Close()
	return scanComplianceEvents(rows)
}

// CountByCompany devuelve el total de eventos de la empresa.
func (r *ComplianceEventRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM compliance_events WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count compliance events: %w", err)
	}
	return n, nil
}

// ListForExport devuelve los eventos del rango para el reporte XML regulatorio,
// en orden cronológico.
func (r *ComplianceEventRepo) ListForExport(companyID string, from, to time.Time) ([]*entity.ComplianceEvent, error) {
	query := complianceSelect + `
		WHERE company_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY occurred_at ASC`
	rows, err := r.pool.Query(context.Background(), query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list compliance events for export: %w", err)
	}
	defer rows.Close()
	return scanComplianceEvents(rows)
}

const complianceSelect = `
	SELECT id, company_id, facility_id, event_type, severity, description, status,
		occurred_at, resolved_at, created_by, created_at, updated_at
	FROM compliance_events`

func scanComplianceEvents(rows pgx.Rows) ([]*entity.ComplianceEvent, error) {
	var list []*entity.ComplianceEvent
	for rows.Next() {
		var e entity.ComplianceEvent
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.FacilityID, &e.EventType, &e.Severity,
			&e.Description, &e.Status, &e.OccurredAt, &e.ResolvedAt,
			&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan compliance event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
