package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
// permissions se persiste como jsonb; inherits_from como text[].
type RoleRepo struct {
	pool *pgxpool.Pool
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// Create persiste un nuevo rol.
func (r *RoleRepo) Create(role *entity.Role) error {
	query := `
		INSERT INTO roles (id, company_id, name, level, scope_level, permissions,
			inherits_from, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		role.ID, role.CompanyID, role.Name, role.Level, role.ScopeLevel,
		role.Permissions, role.InheritsFromRoleIDs, role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol de la empresa.
func (r *RoleRepo) GetByID(companyID, id string) (*entity.Role, error) {
	query := roleSelect + ` WHERE company_id = $1 AND id = $2`
	return scanRole(r.pool.QueryRow(context.Background(), query, companyID, id))
}

// GetAnyByID resuelve un rol sin filtro de empresa. Lo usa el resolver de
// permisos para recorrer herencias dentro de la misma empresa ya verificada.
func (r *RoleRepo) GetAnyByID(id string) (*entity.Role, error) {
	query := roleSelect + ` WHERE id = $1`
	return scanRole(r.pool.QueryRow(context.Background(), query, id))
}

// Update actualiza un rol.
func (r *RoleRepo) Update(role *entity.Role) error {
	query := `
		UPDATE roles SET name = $3, level = $4, permissions = $5, inherits_from = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		role.CompanyID, role.ID, role.Name, role.Level,
		role.Permissions, role.InheritsFromRoleIDs, role.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// ListByCompany devuelve los roles de la empresa con paginación.
func (r *RoleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Role, error) {
	query := roleSelect + ` WHERE company_id = $1 ORDER BY level DESC, name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.CompanyID, &role.Name, &role.Level,
			&role.ScopeLevel, &role.Permissions, &role.InheritsFromRoleIDs,
			&role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// CountByCompany devuelve el total de roles de la empresa.
func (r *RoleRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM roles WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}
	return n, nil
}

const roleSelect = `
	SELECT id, company_id, name, level, scope_level, permissions, inherits_from,
		created_at, updated_at
	FROM roles`

func scanRole(row rowScanner) (*entity.Role, error) {
	var role entity.Role
	err := row.Scan(&role.ID, &role.CompanyID, &role.Name, &role.Level,
		&role.ScopeLevel, &role.Permissions, &role.InheritsFromRoleIDs,
		&role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}
