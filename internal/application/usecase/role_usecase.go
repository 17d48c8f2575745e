package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/permissions"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// RoleUseCase gestión de roles: el mapa de permisos se valida contra los enums
// cerrados al definir el rol y la herencia se verifica acíclica antes de persistir.
type RoleUseCase struct {
	repo     repository.RoleRepository
	resolver *permissions.Resolver
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository, resolver *permissions.Resolver) *RoleUseCase {
	return &RoleUseCase{repo: repo, resolver: resolver}
}

// lookup adapta el repositorio al resolver de permisos, limitado a roles de la empresa.
func (uc *RoleUseCase) lookup(companyID string) permissions.Lookup {
	return func(roleID string) (*permissions.RoleDef, error) {
		role, err := uc.repo.GetByID(companyID, roleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, nil
		}
		return &permissions.RoleDef{
			ID:          role.ID,
			Permissions: role.Permissions,
			InheritsIDs: role.InheritsFromRoleIDs,
		}, nil
	}
}

// Create crea un rol. Recursos o acciones fuera de los enums, o herencia cíclica
// o hacia roles de otra empresa, rechazan la definición con ErrInvalidInput.
func (uc *RoleUseCase) Create(tc *tenant.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.ScopeLevel {
	case entity.RoleScopeCompany, entity.RoleScopeFacility, entity.RoleScopeArea:
	default:
		return nil, domain.ErrInvalidInput
	}
	if _, err := permissions.Compile(in.Permissions); err != nil {
		return nil, domain.ErrInvalidInput
	}

	id := uuid.New().String()
	if err := uc.checkInheritance(tc.CompanyID, id, in.InheritsFromRoleIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	role := &entity.Role{
		ID:                  id,
		CompanyID:           tc.CompanyID,
		Name:                in.Name,
		Level:               in.Level,
		ScopeLevel:          in.ScopeLevel,
		Permissions:         in.Permissions,
		InheritsFromRoleIDs: in.InheritsFromRoleIDs,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// GetByID obtiene un rol de la empresa del caller.
func (uc *RoleUseCase) GetByID(tc *tenant.Context, id string) (*dto.RoleResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	role, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}
	return toRoleResponse(role), nil
}

// Update edita un rol y descarta su mapa efectivo cacheado. Cambiar la herencia
// re-verifica la aciclicidad con la definición propuesta.
func (uc *RoleUseCase) Update(tc *tenant.Context, id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	role, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		role.Name = *in.Name
	}
	if in.Level != nil {
		role.Level = *in.Level
	}
	if in.Permissions != nil {
		if _, err := permissions.Compile(*in.Permissions); err != nil {
			return nil, domain.ErrInvalidInput
		}
		role.Permissions = *in.Permissions
	}
	if in.InheritsFromRoleIDs != nil {
		if err := uc.checkInheritance(tc.CompanyID, role.ID, *in.InheritsFromRoleIDs); err != nil {
			return nil, err
		}
		role.InheritsFromRoleIDs = *in.InheritsFromRoleIDs
	}

	role.UpdatedAt = time.Now()
	if err := uc.repo.Update(role); err != nil {
		return nil, err
	}
	// La definición cambió: cualquier rol que herede de éste también queda
	// desactualizado, así que se descarta el caché completo.
	uc.resolver.Invalidate("")
	return toRoleResponse(role), nil
}

// List lista roles de la empresa con paginación.
func (uc *RoleUseCase) List(tc *tenant.Context, page dto.PageRequest) ([]dto.RoleResponse, *dto.PageMeta, error) {
	if err := tc.Validate(); err != nil {
		return nil, nil, err
	}
	page.Normalize()
	list, err := uc.repo.ListByCompany(tc.CompanyID, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.CountByCompany(tc.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRoleResponse(r))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

// checkInheritance valida que cada rol heredado exista en la empresa y que la
// herencia propuesta no cierre un ciclo.
func (uc *RoleUseCase) checkInheritance(companyID, roleID string, inheritsIDs []string) error {
	for _, parentID := range inheritsIDs {
		parent, err := uc.repo.GetByID(companyID, parentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return domain.ErrInvalidInput
		}
	}
	if err := permissions.CheckNoCycle(roleID, inheritsIDs, uc.lookup(companyID)); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	if r == nil {
		return nil
	}
	return &dto.RoleResponse{
		ID:                  r.ID,
		CompanyID:           r.CompanyID,
		Name:                r.Name,
		Level:               r.Level,
		ScopeLevel:          r.ScopeLevel,
		Permissions:         r.Permissions,
		InheritsFromRoleIDs: r.InheritsFromRoleIDs,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}
