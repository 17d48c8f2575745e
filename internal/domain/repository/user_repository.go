package repository

import "github.com/agrovida/agroops-api/internal/domain/entity"

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(companyID, id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
	Update(user *entity.User) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	CountByCompany(companyID string) (int64, error)
}

// RoleRepository puerto de persistencia para Role.
type RoleRepository interface {
	Create(role *entity.Role) error
	GetByID(companyID, id string) (*entity.Role, error)
	// GetAnyByID resuelve un rol sin filtro de empresa; lo usa el resolver de
	// permisos para recorrer herencias dentro de la misma empresa ya verificada.
	GetAnyByID(id string) (*entity.Role, error)
	Update(role *entity.Role) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Role, error)
	CountByCompany(companyID string) (int64, error)
}
