package usecase

import (
	"time"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// UserUseCase consulta y administración de usuarios de la empresa. El alta vive
// en el caso de uso de autenticación (registro con contraseña).
type UserUseCase struct {
	repo     repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, roleRepo repository.RoleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, roleRepo: roleRepo}
}

// GetByID obtiene un usuario de la empresa del caller.
func (uc *UserUseCase) GetByID(tc *tenant.Context, id string) (*dto.UserResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// Update actualización parcial: nombre, rol, sedes accesibles o estado.
func (uc *UserUseCase) Update(tc *tenant.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = *in.Name
	}
	if in.RoleID != nil {
		role, err := uc.roleRepo.GetByID(tc.CompanyID, *in.RoleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, domain.ErrInvalidInput
		}
		user.RoleID = *in.RoleID
	}
	if in.FacilityIDs != nil {
		user.FacilityIDs = *in.FacilityIDs
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.UserStatusActive, entity.UserStatusInactive, entity.UserStatusSuspended:
			user.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios de la empresa con paginación.
func (uc *UserUseCase) List(tc *tenant.Context, page dto.PageRequest) ([]dto.UserResponse, *dto.PageMeta, error) {
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
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, dto.NewPageMeta(page.Page, page.Limit, total), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		Name:        u.Name,
		RoleID:      u.RoleID,
		FacilityIDs: u.FacilityIDs,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
