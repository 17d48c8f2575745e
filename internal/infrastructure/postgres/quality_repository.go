package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.QualityTemplateRepository = (*QualityTemplateRepo)(nil)

// QualityTemplateRepo implementación del puerto QualityTemplateRepository sobre
// PostgreSQL. El esquema del formulario se persiste como jsonb.
type QualityTemplateRepo struct {
	pool *pgxpool.Pool
}

// NewQualityTemplateRepository construye el adaptador de persistencia para plantillas.
func NewQualityTemplateRepository(pool *pgxpool.Pool) *QualityTemplateRepo {
	return &QualityTemplateRepo{pool: pool}
}

// Create persiste una versión de plantilla.
func (r *QualityTemplateRepo) Create(template *entity.QualityTemplate) error {
	query := `
		INSERT INTO quality_templates (id, root_id, company_id, name, version, schema,
			status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		template.ID, template.RootID, template.CompanyID, template.Name,
		template.Version, template.Schema, template.Status, template.CreatedBy,
		template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quality template: %w", err)
	}
	return nil
}

// GetByID obtiene una versión de plantilla de la empresa.
func (r *QualityTemplateRepo) GetByID(companyID, id string) (*entity.QualityTemplate, error) {
	query := templateSelect + ` WHERE company_id = $1 AND id = $2`
	return scanTemplate(r.pool.QueryRow(context.Background(), query, companyID, id))
}

// GetActiveByRoot obtiene la versión vigente de una raíz de plantilla.
func (r *QualityTemplateRepo) GetActiveByRoot(companyID, rootID string) (*entity.QualityTemplate, error) {
	query := templateSelect + ` WHERE company_id = $1 AND root_id = $2 AND status = 'active'`
	return scanTemplate(r.pool.QueryRow(context.Background(), query, companyID, rootID))
}

// Update muta una versión en sitio; solo es válido sin inspecciones registradas.
func (r *QualityTemplateRepo) Update(template *entity.QualityTemplate) error {
	query := `
		UPDATE quality_templates SET name = $3, schema = $4, updated_at = $5
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		template.CompanyID, template.ID, template.Name, template.Schema, template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quality template: %w", err)
	}
	return nil
}

// ListByCompany devuelve las versiones vigentes de la empresa con paginación.
func (r *QualityTemplateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.QualityTemplate, error) {
	query := templateSelect + `
		WHERE company_id = $1 AND status = 'active'
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quality templates: %w", err)
	}
	defer rows.Close()
	return scanTemplates(rows)
}

// ListVersions devuelve todas las versiones (activas y archivadas) de una raíz.
func (r *QualityTemplateRepo) ListVersions(companyID, rootID string) ([]*entity.QualityTemplate, error) {
	query := templateSelect + `
		WHERE company_id = $1 AND root_id = $2 ORDER BY version DESC`
	rows, err := r.pool.Query(context.Background(), query, companyID, rootID)
	if err != nil {
		return nil, fmt.Errorf("list template versions: %w", err)
	}
	defer rows.Close()
	return scanTemplates(rows)
}

// CountByCompany devuelve el total de versiones vigentes de la empresa.
func (r *QualityTemplateRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quality_templates WHERE company_id = $1 AND status = 'active'`,
		companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quality templates: %w", err)
	}
	return n, nil
}

// SetStatus cambia el estado de una versión (active/archived).
func (r *QualityTemplateRepo) SetStatus(companyID, id, status string) error {
	cmd, err := r.pool.Exec(context.Background(),
		`UPDATE quality_templates SET status = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, status)
	if err != nil {
		return fmt.Errorf("set template status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountUsages cuenta inspecciones que referencian la versión de plantilla.
func (r *QualityTemplateRepo) CountUsages(templateID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quality_inspections WHERE template_id = $1`, templateID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count template usages: %w", err)
	}
	return n, nil
}

const templateSelect = `
	SELECT id, root_id, company_id, name, version, schema, status, created_by,
		created_at, updated_at
	FROM quality_templates`

func scanTemplate(row rowScanner) (*entity.QualityTemplate, error) {
	var t entity.QualityTemplate
	err := row.Scan(&t.ID, &t.RootID, &t.CompanyID, &t.Name, &t.Version,
		&t.Schema, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quality template: %w", err)
	}
	return &t, nil
}

func scanTemplates(rows pgx.Rows) ([]*entity.QualityTemplate, error) {
	var list []*entity.QualityTemplate
	for rows.Next() {
		var t entity.QualityTemplate
		if err := rows.Scan(&t.ID, &t.RootID, &t.CompanyID, &t.Name, &t.Version,
			&t.Schema, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quality template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

var _ repository.QualityInspectionRepository = (*QualityInspectionRepo)(nil)

// QualityInspectionRepo implementación del puerto QualityInspectionRepository
// sobre PostgreSQL. answers y ai_annotations se persisten como jsonb.
type QualityInspectionRepo struct {
	pool *pgxpool.Pool
}

// NewQualityInspectionRepository construye el adaptador de persistencia para inspecciones.
func NewQualityInspectionRepository(pool *pgxpool.Pool) *QualityInspectionRepo {
	return &QualityInspectionRepo{pool: pool}
}

// Create persiste una inspección (normalmente en borrador).
func (r *QualityInspectionRepo) Create(inspection *entity.QualityInspection) error {
	query := `
		INSERT INTO quality_inspections (id, company_id, facility_id, target_type, target_id,
			template_id, template_version, status, result, answers, ai_annotations,
			inspector_id, submitted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.pool.Exec(context.Background(), query,
		inspection.ID, inspection.CompanyID, inspection.FacilityID,
		inspection.TargetType, inspection.TargetID, inspection.TemplateID,
		inspection.TemplateVersion, inspection.Status, inspection.Result,
		inspection.Answers, inspection.AIAnnotations, inspection.InspectorID,
		inspection.SubmittedAt, inspection.CreatedAt, inspection.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quality inspection: %w", err)
	}
	return nil
}

// GetByID obtiene una inspección de la empresa.
func (r *QualityInspectionRepo) GetByID(companyID, id string) (*entity.QualityInspection, error) {
	query := inspectionSelect + ` WHERE company_id = $1 AND id = $2`
	var i entity.QualityInspection
	err := r.pool.QueryRow(context.Background(), query, companyID, id).Scan(
		&i.ID, &i.CompanyID, &i.FacilityID, &i.TargetType, &i.TargetID,
		&i.TemplateID, &i.TemplateVersion, &i.Status, &i.Result,
		&i.Answers, &i.AIAnnotations, &i.InspectorID, &i.SubmittedAt,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quality inspection: %w", err)
	}
	return &i, nil
}

// Update actualiza una inspección (envío de respuestas, anotaciones).
func (r *QualityInspectionRepo) Update(inspection *entity.QualityInspection) error {
	query := `
		UPDATE quality_inspections SET status = $3, result = $4, answers = $5,
			ai_annotations = $6, submitted_at = $7, updated_at = $8
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		inspection.CompanyID, inspection.ID, inspection.Status, inspection.Result,
		inspection.Answers, inspection.AIAnnotations, inspection.SubmittedAt,
		inspection.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quality inspection: %w", err)
	}
	return nil
}

// ListByFacility devuelve las inspecciones de una sede con paginación.
func (r *QualityInspectionRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.QualityInspection, error) {
	query := inspectionSelect + `
		WHERE company_id = $1 AND facility_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, companyID, facilityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quality inspections: %w", err)
	}
	defer rows.Close()
	return scanInspections(rows)
}

// ListByTarget devuelve las inspecciones de un lote o área con paginación.
func (r *QualityInspectionRepo) ListByTarget(companyID, targetType, targetID string, limit, offset int) ([]*entity.QualityInspection, error) {
	query := inspectionSelect + `
		WHERE company_id = $1 AND target_type = $2 AND target_id = $3
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.pool.Query(context.Background(), query, companyID, targetType, targetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inspections by target: %w", err)
	}
	defer rows.Close()
	return scanInspections(rows)
}

// CountByFacility devuelve el total de inspecciones de una sede.
func (r *QualityInspectionRepo) CountByFacility(companyID, facilityID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quality_inspections WHERE company_id = $1 AND facility_id = $2`,
		companyID, facilityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quality inspections: %w", err)
	}
	return n, nil
}

// CountByTarget devuelve el total de inspecciones de un lote o área.
func (r *QualityInspectionRepo) CountByTarget(companyID, targetType, targetID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quality_inspections WHERE company_id = $1 AND target_type = $2 AND target_id = $3`,
		companyID, targetType, targetID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quality inspections by target: %w", err)
	}
	return n, nil
}

const inspectionSelect = `
	SELECT id, company_id, facility_id, target_type, target_id, template_id,
		template_version, status, result, answers, ai_annotations, inspector_id,
		submitted_at, created_at, updated_at
	FROM quality_inspections`

func scanInspections(rows pgx.Rows) ([]*entity.QualityInspection, error) {
	var list []*entity.QualityInspection
	for rows.Next() {
		var i entity.QualityInspection
		if err := rows.Scan(&i.ID, &i.CompanyID, &i.FacilityID, &i.TargetType, &i.TargetID,
			&i.TemplateID, &i.TemplateVersion, &i.Status, &i.Result,
			&i.Answers, &i.AIAnnotations, &i.InspectorID, &i.SubmittedAt,
			&i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quality inspection: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
